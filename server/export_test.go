package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) AskSecurityAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.askSecurityAgent(ctx, req)
}
