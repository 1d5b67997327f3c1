// Package server exposes the security agent itself as an MCP tool provider, so
// other MCP clients can delegate security questions to it.
package server

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	Name    = "secagent"
	Version = "0.1.0"

	// ToolName is the only tool served.
	ToolName = "ask_security_agent"
)

// Router is a set of tool providers connected for the duration of one question.
type Router interface {
	secagent.ToolRouter
	Connect(ctx context.Context)
	Close() error
}

// RouterFactory creates an unconnected Router. It is called once per question.
type RouterFactory func() Router

// Server answers ask_security_agent calls. Every call gets its own Router, so
// provider processes never outlive the question that started them.
type Server struct {
	llm       secagent.LLMClient
	newRouter RouterFactory

	agentOptions []secagent.Option
	logger       *slog.Logger

	mcpServer *server.MCPServer
}

type Option func(*Server)

// WithAgentOptions sets options applied to the agent created for each call.
func WithAgentOptions(options ...secagent.Option) Option {
	return func(s *Server) {
		s.agentOptions = append(s.agentOptions, options...)
	}
}

// WithLogger sets the logger. Default is discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server reasoning with llmClient over routers built by newRouter.
func New(llmClient secagent.LLMClient, newRouter RouterFactory, options ...Option) *Server {
	s := &Server{
		llm:       llmClient,
		newRouter: newRouter,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(Name, Version, server.WithToolCapabilities(false))
	s.mcpServer.AddTool(mcp.NewTool(ToolName,
		mcp.WithDescription("Ask the security expert agent a question. It can use GitHub and other tools to analyze the security of a repository."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask the agent"),
		),
	), s.askSecurityAgent)

	return s
}

func (s *Server) askSecurityAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = ctxlog.With(ctx, s.logger)
	logger := ctxlog.From(ctx)

	question, _ := req.Params.Arguments["question"].(string)
	if strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question is required"), nil
	}

	router := s.newRouter()
	router.Connect(ctx)
	defer func() {
		if err := router.Close(); err != nil {
			logger.Warn("failed to close providers", "error", err)
		}
	}()

	options := append([]secagent.Option{secagent.WithLogger(s.logger)}, s.agentOptions...)
	agent := secagent.New(s.llm, router, options...)

	return mcp.NewToolResultText(agent.Run(ctx, question)), nil
}

// Serve speaks MCP over in and out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return goerr.Wrap(err, "MCP server stopped")
	}
	return nil
}
