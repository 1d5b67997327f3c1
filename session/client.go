package session

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// ClientName is advertised to providers during the initialize handshake.
	ClientName = "secagent"
	// ClientVersion is advertised to providers during the initialize handshake.
	ClientVersion = "0.1.0"
)

// Client is a connected MCP provider channel.
type Client interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	Close() error
}

// Connector launches a provider and completes its handshake.
type Connector func(ctx context.Context, cfg ProviderConfig) (Client, error)

// stdioClient talks MCP to a child process over its stdin/stdout.
type stdioClient struct {
	client *client.Client
}

// StdioConnector spawns cfg.Command with cfg.Args and the cfg.Env overlay, then
// performs the MCP initialize handshake. The child process is terminated if the
// handshake fails.
func StdioConnector(ctx context.Context, cfg ProviderConfig) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp := transport.NewStdio(cfg.Command, cfg.envVars(), cfg.Args...)
	c := client.NewClient(tp)

	if err := c.Start(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to start MCP provider",
			goerr.V("provider", cfg.Name),
			goerr.V("command", cfg.Command),
		)
	}

	var initRequest mcp.InitializeRequest
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    ClientName,
		Version: ClientVersion,
	}

	resp, err := c.Initialize(ctx, initRequest)
	if err != nil {
		if closeErr := c.Close(); closeErr != nil {
			ctxlog.From(ctx).Warn("failed to close provider after handshake error",
				"provider", cfg.Name,
				"error", closeErr,
			)
		}
		return nil, goerr.Wrap(err, "failed to initialize MCP provider", goerr.V("provider", cfg.Name))
	}

	ctxlog.From(ctx).Debug("MCP provider initialized",
		"provider", cfg.Name,
		"server.name", resp.ServerInfo.Name,
		"server.version", resp.ServerInfo.Version,
	)

	return &stdioClient{client: c}, nil
}

func (x *stdioClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	resp, err := x.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tools")
	}

	return resp.Tools, nil
}

func (x *stdioClient) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	resp, err := x.client.CallTool(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call tool", goerr.V("tool", name))
	}

	return resp, nil
}

func (x *stdioClient) Close() error {
	if err := x.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close MCP client")
	}
	return nil
}
