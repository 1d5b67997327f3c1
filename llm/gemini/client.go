package gemini

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/llm"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash"
)

var (
	// geminiPromptScope is the logging scope for Gemini prompts
	geminiPromptScope = ctxlog.NewScope("gemini_prompt", ctxlog.EnabledBy("SECAGENT_LOGGING_GEMINI_PROMPT"))

	// geminiResponseScope is the logging scope for Gemini responses
	geminiResponseScope = ctxlog.NewScope("gemini_response", ctxlog.EnabledBy("SECAGENT_LOGGING_GEMINI_RESPONSE"))
)

// Client generates text with the Gemini API authenticated by an API key.
type Client struct {
	apiClient apiClient

	// model is the model to use for generation.
	// It can be overridden using WithModel option.
	model string

	// config contains the generation parameters
	config *genai.GenerateContentConfig
}

// Option is a configuration option for the Gemini client.
type Option func(*Client)

// WithModel sets the model to use for text generation.
// Default: "gemini-2.5-flash"
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the temperature parameter for text generation.
// Range: 0.0 to 2.0
func WithTemperature(temp float32) Option {
	return func(c *Client) {
		c.config.Temperature = &temp
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int32) Option {
	return func(c *Client) {
		c.config.MaxOutputTokens = maxTokens
	}
}

// New creates a new client for the Gemini API.
func New(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, goerr.New("API key is required")
	}

	client := newClient(options...)

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}
	client.apiClient = &realAPIClient{client: gc}

	return client, nil
}

func newClient(options ...Option) *Client {
	client := &Client{
		model:  DefaultModel,
		config: &genai.GenerateContentConfig{},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Generate sends the whole conversation and returns the generated text.
func (c *Client) Generate(ctx context.Context, turns []string) (string, error) {
	if err := llm.ValidateTurns(turns); err != nil {
		return "", err
	}

	contents := make([]*genai.Content, len(turns))
	for i, turn := range turns {
		contents[i] = &genai.Content{
			Role:  llm.RoleOf(i).String(),
			Parts: []*genai.Part{{Text: turn}},
		}
	}

	ctxlog.From(ctx, geminiPromptScope).Debug("gemini prompt",
		"model", c.model,
		"turns", len(turns),
		"last", turns[len(turns)-1],
	)

	resp, err := c.apiClient.GenerateContent(ctx, c.model, contents, c.config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("model", c.model))
	}

	text := responseText(resp)
	ctxlog.From(ctx, geminiResponseScope).Debug("gemini response", "text", text)

	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
