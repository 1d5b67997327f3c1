package trace

import "context"

// Handler is the interface for trace backends.
// Implementations receive lifecycle events during an agent run
// and can record, export, or forward them as needed.
type Handler interface {
	// StartRun starts the root span of a run.
	StartRun(ctx context.Context, runID, question string) context.Context
	// EndRun ends the root span. answer is the text returned to the caller.
	EndRun(ctx context.Context, answer string, err error)

	// StartModelCall starts a model call span.
	StartModelCall(ctx context.Context, turns int) context.Context
	// EndModelCall ends a model call span with the generated text.
	EndModelCall(ctx context.Context, response string, err error)

	// StartToolCall starts a tool call span.
	StartToolCall(ctx context.Context, server, tool string, args map[string]any) context.Context
	// EndToolCall ends a tool call span with the rendered result.
	EndToolCall(ctx context.Context, result string, err error)

	// AddEvent adds an event to the current span.
	AddEvent(ctx context.Context, kind string, data any)

	// Finish completes the trace of the run in ctx and performs any final operations.
	Finish(ctx context.Context) error
}
