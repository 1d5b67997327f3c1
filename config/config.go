// Package config loads agent settings from the environment, an optional .env file
// and command line flags.
package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent"
	"github.com/m-mizutani/secagent/llm/claude"
	"github.com/m-mizutani/secagent/llm/gemini"
	"github.com/m-mizutani/secagent/llm/openai"
	"github.com/m-mizutani/secagent/llm/vertex"
	"github.com/m-mizutani/secagent/session"
	"github.com/urfave/cli/v3"
)

// Supported model backends.
const (
	LLMGemini = "gemini"
	LLMVertex = "vertex"
	LLMOpenAI = "openai"
	LLMClaude = "claude"
)

var ErrUnsupportedLLM = errors.New("unsupported LLM backend")

// Load reads KEY=VALUE pairs from path into the process environment. Variables
// already set are not overridden. A missing file is not an error.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

// Config holds the settings needed to build a model client and the set of tool
// providers.
type Config struct {
	LLM   string
	Model string

	GeminiAPIKey string

	VertexProjectID       string
	VertexLocation        string
	VertexCredentialsFile string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	AnthropicAPIKey string

	// MCPServers is the provider configuration as a JSON object keyed by
	// provider name.
	MCPServers string
}

// Flags returns command line flags bound to c. Each flag also reads its
// environment variable.
func (c *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm",
			Usage:       "Model backend (gemini, vertex, openai, claude)",
			Value:       LLMGemini,
			Sources:     cli.EnvVars("SECAGENT_LLM"),
			Destination: &c.LLM,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Model name. Backend default if empty",
			Sources:     cli.EnvVars("SECAGENT_MODEL"),
			Destination: &c.Model,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &c.GeminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "vertex-project-id",
			Usage:       "Google Cloud project ID for Vertex AI",
			Sources:     cli.EnvVars("VERTEX_PROJECT_ID"),
			Destination: &c.VertexProjectID,
		},
		&cli.StringFlag{
			Name:        "vertex-location",
			Usage:       "Vertex AI location",
			Value:       vertex.DefaultLocation,
			Sources:     cli.EnvVars("VERTEX_LOCATION"),
			Destination: &c.VertexLocation,
		},
		&cli.StringFlag{
			Name:        "vertex-credentials-file",
			Usage:       "Service account key file for Vertex AI",
			Sources:     cli.EnvVars("VERTEX_CREDENTIALS_FILE"),
			Destination: &c.VertexCredentialsFile,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &c.OpenAIAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Usage:       "Base URL of an OpenAI compatible endpoint",
			Sources:     cli.EnvVars("OPENAI_BASE_URL"),
			Destination: &c.OpenAIBaseURL,
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
			Destination: &c.AnthropicAPIKey,
		},
		&cli.StringFlag{
			Name:        "mcp-servers",
			Usage:       `Tool providers as JSON: {"name":{"command":"...","args":[],"env":{}}}`,
			Value:       "{}",
			Sources:     cli.EnvVars("MCP_SERVERS_CONFIG"),
			Destination: &c.MCPServers,
		},
	}
}

// LogValue hides credentials when the config is logged.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("llm", c.LLM),
		slog.String("model", c.Model),
		slog.String("vertex_project_id", c.VertexProjectID),
		slog.String("vertex_location", c.VertexLocation),
		slog.String("openai_base_url", c.OpenAIBaseURL),
		slog.Bool("gemini_api_key", c.GeminiAPIKey != ""),
		slog.Bool("openai_api_key", c.OpenAIAPIKey != ""),
		slog.Bool("anthropic_api_key", c.AnthropicAPIKey != ""),
	)
}

// Providers parses MCPServers.
func (c *Config) Providers() ([]session.ProviderConfig, error) {
	return ParseProviders(c.MCPServers)
}

// NewLLMClient builds the model client selected by LLM.
func (c *Config) NewLLMClient(ctx context.Context) (secagent.LLMClient, error) {
	switch c.LLM {
	case LLMGemini, "":
		var opts []gemini.Option
		if c.Model != "" {
			opts = append(opts, gemini.WithModel(c.Model))
		}
		return gemini.New(ctx, c.GeminiAPIKey, opts...)

	case LLMVertex:
		opts := []vertex.Option{vertex.WithLocation(c.VertexLocation)}
		if c.Model != "" {
			opts = append(opts, vertex.WithModel(c.Model))
		}
		if c.VertexCredentialsFile != "" {
			opts = append(opts, vertex.WithCredentialsFile(c.VertexCredentialsFile))
		}
		return vertex.New(ctx, c.VertexProjectID, opts...)

	case LLMOpenAI:
		var opts []openai.Option
		if c.Model != "" {
			opts = append(opts, openai.WithModel(c.Model))
		}
		if c.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(c.OpenAIBaseURL))
		}
		return openai.New(ctx, c.OpenAIAPIKey, opts...)

	case LLMClaude:
		var opts []claude.Option
		if c.Model != "" {
			opts = append(opts, claude.WithModel(c.Model))
		}
		return claude.New(ctx, c.AnthropicAPIKey, opts...)

	default:
		return nil, goerr.Wrap(ErrUnsupportedLLM, "unknown LLM backend", goerr.V("llm", c.LLM))
	}
}
