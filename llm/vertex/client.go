// Package vertex generates text with Gemini models served by Vertex AI.
package vertex

import (
	"context"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/llm"
	"google.golang.org/api/option"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultLocation = "us-central1"
)

var vertexPromptScope = ctxlog.NewScope("vertex_prompt", ctxlog.EnabledBy("SECAGENT_LOGGING_VERTEX_PROMPT"))

// Client is a Vertex AI backed text generator.
type Client struct {
	apiClient apiClient
	model     string

	location        string
	credentialsFile string
	temperature     *float32
	maxTokens       *int32
}

type Option func(*Client)

// WithModel sets the model name. Default: "gemini-2.5-flash"
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithLocation sets the Vertex AI region. Default: "us-central1"
func WithLocation(location string) Option {
	return func(c *Client) {
		c.location = location
	}
}

// WithCredentialsFile authenticates with a service account key file instead of
// application default credentials.
func WithCredentialsFile(path string) Option {
	return func(c *Client) {
		c.credentialsFile = path
	}
}

func WithTemperature(temp float32) Option {
	return func(c *Client) {
		c.temperature = &temp
	}
}

func WithMaxTokens(maxTokens int32) Option {
	return func(c *Client) {
		c.maxTokens = &maxTokens
	}
}

// New creates a Vertex AI client for projectID.
func New(ctx context.Context, projectID string, options ...Option) (*Client, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is required")
	}

	c := newClient(options...)

	var clientOptions []option.ClientOption
	if c.credentialsFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(c.credentialsFile))
	}

	gc, err := genai.NewClient(ctx, projectID, c.location, clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Vertex AI client",
			goerr.V("project_id", projectID),
			goerr.V("location", c.location),
		)
	}
	c.apiClient = &realAPIClient{
		client:      gc,
		temperature: c.temperature,
		maxTokens:   c.maxTokens,
	}

	return c, nil
}

func newClient(options ...Option) *Client {
	c := &Client{
		model:    DefaultModel,
		location: DefaultLocation,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Generate replays the conversation as chat history and sends the last turn.
func (c *Client) Generate(ctx context.Context, turns []string) (string, error) {
	if err := llm.ValidateTurns(turns); err != nil {
		return "", err
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for i, turn := range turns[:len(turns)-1] {
		history = append(history, &genai.Content{
			Role:  llm.RoleOf(i).String(),
			Parts: []genai.Part{genai.Text(turn)},
		})
	}
	last := turns[len(turns)-1]

	ctxlog.From(ctx, vertexPromptScope).Debug("vertex prompt", "model", c.model, "turns", len(turns), "last", last)

	resp, err := c.apiClient.SendMessage(ctx, c.model, history, last)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send message", goerr.V("model", c.model))
	}

	return responseText(resp), nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c.apiClient == nil {
		return nil
	}
	return c.apiClient.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
