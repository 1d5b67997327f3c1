package secagent

import (
	"context"

	"github.com/m-mizutani/secagent/session"
)

//go:generate go tool moq -out mock/secagent.go -pkg mock . LLMClient ToolRouter
//go:generate go tool moq -out mock/session.go -pkg mock ./session Client

// LLMClient generates the next model turn from the whole conversation. turns is
// replayed in order; even indexes are user turns and odd indexes are model turns.
type LLMClient interface {
	Generate(ctx context.Context, turns []string) (string, error)
}

// ToolRouter lists tools across providers and routes calls to them.
// *session.Manager implements it.
type ToolRouter interface {
	ListTools(ctx context.Context) ([]session.ToolDescriptor, error)
	CallTool(ctx context.Context, provider, tool string, args map[string]any) (*session.ToolResult, error)
}

var _ ToolRouter = (*session.Manager)(nil)
