package openai

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/llm"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "gpt-4o"
)

var (
	// openaiPromptScope is the logging scope for OpenAI prompts
	openaiPromptScope = ctxlog.NewScope("openai_prompt", ctxlog.EnabledBy("SECAGENT_LOGGING_OPENAI_PROMPT"))

	// openaiResponseScope is the logging scope for OpenAI responses
	openaiResponseScope = ctxlog.NewScope("openai_response", ctxlog.EnabledBy("SECAGENT_LOGGING_OPENAI_RESPONSE"))
)

// generationParameters represents the parameters for text generation.
type generationParameters struct {
	// Temperature controls randomness in the output.
	Temperature float32

	// MaxTokens limits the number of tokens to generate.
	MaxTokens int
}

// Client is a client for the OpenAI chat completion API, or any endpoint
// compatible with it.
type Client struct {
	apiClient apiClient

	// defaultModel is the model to use for chat completions.
	// It can be overridden using WithModel option.
	defaultModel string

	// baseURL is the custom base URL for the OpenAI API.
	// If empty, uses the default OpenAI API endpoints.
	baseURL string

	params generationParameters
}

// Option is a configuration option for the OpenAI client.
type Option func(*Client)

// WithModel sets the default model to use for chat completions.
func WithModel(modelName string) Option {
	return func(c *Client) {
		c.defaultModel = modelName
	}
}

// WithBaseURL sets a custom base URL for the OpenAI API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTemperature sets the temperature parameter for text generation.
func WithTemperature(temp float32) Option {
	return func(c *Client) {
		c.params.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Client) {
		c.params.MaxTokens = maxTokens
	}
}

// New creates a new client for the OpenAI API.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}

	client := newClient(options...)

	config := openai.DefaultConfig(apiKey)
	if client.baseURL != "" {
		config.BaseURL = client.baseURL
	}
	client.apiClient = &realAPIClient{client: openai.NewClientWithConfig(config)}

	return client, nil
}

func newClient(options ...Option) *Client {
	client := &Client{
		defaultModel: DefaultModel,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Generate sends the conversation as alternating user and assistant messages and
// returns the content of the first choice.
func (c *Client) Generate(ctx context.Context, turns []string) (string, error) {
	if err := llm.ValidateTurns(turns); err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, turn := range turns {
		role := openai.ChatMessageRoleUser
		if llm.RoleOf(i) == llm.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		messages[i] = openai.ChatCompletionMessage{Role: role, Content: turn}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.defaultModel,
		Messages:    messages,
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	}

	ctxlog.From(ctx, openaiPromptScope).Debug("openai prompt",
		"model", req.Model,
		"messages", len(messages),
		"last", turns[len(turns)-1],
	)

	resp, err := c.apiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create chat completion", goerr.V("model", req.Model))
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	text := resp.Choices[0].Message.Content
	ctxlog.From(ctx, openaiResponseScope).Debug("openai response",
		"text", text,
		"finish_reason", resp.Choices[0].FinishReason,
		"usage.prompt_tokens", resp.Usage.PromptTokens,
		"usage.completion_tokens", resp.Usage.CompletionTokens,
	)

	return text, nil
}
