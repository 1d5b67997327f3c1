package claude

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/llm"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 8192
)

var (
	// claudePromptScope is the logging scope for Claude prompts
	claudePromptScope = ctxlog.NewScope("claude_prompt", ctxlog.EnabledBy("SECAGENT_LOGGING_CLAUDE_PROMPT"))

	// claudeResponseScope is the logging scope for Claude responses
	claudeResponseScope = ctxlog.NewScope("claude_response", ctxlog.EnabledBy("SECAGENT_LOGGING_CLAUDE_RESPONSE"))
)

// Client is a client for the Anthropic Messages API.
type Client struct {
	apiClient apiClient

	// defaultModel is the model to use for generation.
	defaultModel string

	// baseURL overrides the API endpoint when set.
	baseURL string

	maxTokens   int64
	temperature float64
}

// Option is a configuration option for the Claude client.
type Option func(*Client)

// WithModel sets the default model to use for text generation.
func WithModel(modelName string) Option {
	return func(c *Client) {
		c.defaultModel = modelName
	}
}

// WithBaseURL sets a custom base URL for the Anthropic API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithMaxTokens sets the maximum number of tokens to generate. Default: 8192
func WithMaxTokens(maxTokens int64) Option {
	return func(c *Client) {
		c.maxTokens = maxTokens
	}
}

// WithTemperature sets the temperature parameter. A value of zero or less
// leaves the API default.
func WithTemperature(temp float64) Option {
	return func(c *Client) {
		c.temperature = temp
	}
}

// New creates a new client for the Anthropic API.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}

	client := newClient(options...)

	clientOptions := []option.RequestOption{option.WithAPIKey(apiKey)}
	if client.baseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(client.baseURL))
	}
	ac := anthropic.NewClient(clientOptions...)
	client.apiClient = &realAPIClient{client: &ac}

	return client, nil
}

func newClient(options ...Option) *Client {
	client := &Client{
		defaultModel: DefaultModel,
		maxTokens:    DefaultMaxTokens,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Generate sends the conversation as alternating user and assistant messages and
// concatenates the text blocks of the reply.
func (c *Client) Generate(ctx context.Context, turns []string) (string, error) {
	if err := llm.ValidateTurns(turns); err != nil {
		return "", err
	}

	messages := make([]anthropic.MessageParam, len(turns))
	for i, turn := range turns {
		if llm.RoleOf(i) == llm.RoleModel {
			messages[i] = anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn))
		} else {
			messages[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(turn))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.defaultModel),
		Messages:  messages,
		MaxTokens: c.maxTokens,
	}
	if c.temperature > 0 {
		params.Temperature = anthropic.Float(c.temperature)
	}

	ctxlog.From(ctx, claudePromptScope).Debug("claude prompt",
		"model", c.defaultModel,
		"messages", len(messages),
		"last", turns[len(turns)-1],
	)

	resp, err := c.apiClient.MessagesNew(ctx, params)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create message", goerr.V("model", c.defaultModel))
	}
	if resp == nil {
		return "", nil
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := b.String()

	ctxlog.From(ctx, claudeResponseScope).Debug("claude response",
		"text", text,
		"stop_reason", resp.StopReason,
		"usage.input_tokens", resp.Usage.InputTokens,
		"usage.output_tokens", resp.Usage.OutputTokens,
	)

	return text, nil
}
