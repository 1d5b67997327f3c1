// Package secagent answers security questions about source-code repositories by
// letting a language model call tools served by MCP providers until it produces a
// final answer.
package secagent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/session"
	"github.com/m-mizutani/secagent/trace"
)

// Agent drives the reasoning loop for one question at a time.
type Agent struct {
	llm    LLMClient
	router ToolRouter

	loopLimit     int
	maxResultSize int
	validateArgs  bool

	toolRequestHook ToolRequestHook
	messageHook     MessageHook

	trace  trace.Handler
	logger *slog.Logger
}

const (
	// DefaultLoopLimit is the maximum number of model turns in one run.
	DefaultLoopLimit = 32
)

// ToolRequestHook is called before a tool is invoked. Returning an error skips the
// invocation and reports the error to the model instead.
type ToolRequestHook func(ctx context.Context, call ToolCall) error

// MessageHook is called with every text generated by the model. Returning an
// error aborts the run.
type MessageHook func(ctx context.Context, msg string) error

// New creates an Agent that reasons with llmClient and runs tools through router.
func New(llmClient LLMClient, router ToolRouter, options ...Option) *Agent {
	a := &Agent{
		llm:             llmClient,
		router:          router,
		loopLimit:       DefaultLoopLimit,
		maxResultSize:   DefaultMaxResultSize,
		toolRequestHook: func(ctx context.Context, call ToolCall) error { return nil },
		messageHook:     func(ctx context.Context, msg string) error { return nil },
		logger:          slog.New(slog.DiscardHandler),
	}

	for _, opt := range options {
		opt(a)
	}

	return a
}

// Option configures an Agent.
type Option func(*Agent)

// WithLoopLimit sets the maximum number of model turns in one run. A run that
// reaches the limit ends with an ErrBudgetExceeded description as its answer.
func WithLoopLimit(loopLimit int) Option {
	return func(a *Agent) {
		a.loopLimit = loopLimit
	}
}

// WithMaxResultSize bounds, in bytes, the tool output embedded in the conversation.
// Zero or a negative value disables truncation.
func WithMaxResultSize(size int) Option {
	return func(a *Agent) {
		a.maxResultSize = size
	}
}

// WithArgumentValidation validates tool arguments against the tool's input schema
// before calling the provider. A mismatch is reported to the model.
func WithArgumentValidation() Option {
	return func(a *Agent) {
		a.validateArgs = true
	}
}

// WithToolRequestHook sets a hook called before each tool invocation.
// Usage:
//
//	secagent.WithToolRequestHook(func(ctx context.Context, call secagent.ToolCall) error {
//		println("running tool: " + call.Tool)
//		return nil
//	})
func WithToolRequestHook(hook ToolRequestHook) Option {
	return func(a *Agent) {
		a.toolRequestHook = hook
	}
}

// WithMessageHook sets a hook called with every text generated by the model.
func WithMessageHook(hook MessageHook) Option {
	return func(a *Agent) {
		a.messageHook = hook
	}
}

// WithTrace records every run with h.
func WithTrace(h trace.Handler) Option {
	return func(a *Agent) {
		a.trace = h
	}
}

// WithLogger sets the logger. Default is discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// Run answers question. It never fails: the returned text is either the model's
// final answer or a description of the error that ended the run.
func (a *Agent) Run(ctx context.Context, question string) string {
	runID := uuid.New().String()
	logger := a.logger.With("secagent.run_id", runID)
	ctx = ctxlog.With(ctx, logger)
	logger.Info("start run", "question", question)

	if a.trace != nil {
		ctx = trace.WithHandler(ctx, a.trace)
		ctx = a.trace.StartRun(ctx, runID, question)
	}

	answer, err := a.run(ctx, question)
	if err != nil {
		logger.Error("run failed", "error", err)
		answer = errorAnswer(err)
	} else {
		logger.Info("run finished", "answer.length", len(answer))
	}

	if a.trace != nil {
		a.trace.EndRun(ctx, answer, err)
		if err := a.trace.Finish(ctx); err != nil {
			logger.Warn("failed to finish trace", "error", err)
		}
	}

	return answer
}

func errorAnswer(err error) string {
	if goerr.HasTag(err, ErrTagModelInvocation) {
		return "error in reasoning loop: " + err.Error()
	}
	return "error: " + err.Error()
}

func (a *Agent) run(ctx context.Context, question string) (string, error) {
	logger := ctxlog.From(ctx)

	catalog, err := a.router.ListTools(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list tools")
	}
	logger.Debug("tool catalog", "tools", len(catalog))

	preamble, err := renderPreamble(catalog, question)
	if err != nil {
		return "", err
	}

	var conv Conversation
	conv.Append(preamble)

	for i := 0; i < a.loopLimit; i++ {
		if err := ctx.Err(); err != nil {
			return "", goerr.Wrap(err, "run cancelled", goerr.V("loop", i))
		}
		logger.Debug("awaiting model", "loop", i, "turns", conv.Len())

		text, err := a.generate(ctx, conv.Turns())
		if err != nil {
			return "", goerr.Wrap(err, "model invocation failed", goerr.Tag(ErrTagModelInvocation))
		}
		if strings.TrimSpace(text) == "" {
			return "", goerr.Wrap(ErrEmptyResponse, "model returned no text", goerr.V("loop", i))
		}

		if err := a.messageHook(ctx, text); err != nil {
			return "", goerr.Wrap(err, "message hook failed")
		}

		r, err := decodeReply(text)
		if err != nil {
			logger.Warn("malformed tool call", "error", err)
			if h := trace.HandlerFrom(ctx); h != nil {
				h.AddEvent(ctx, "malformed_tool_call", map[string]any{"error": err.Error()})
			}
			conv.Append(text, toolErrorEntry(err))
			continue
		}

		if r.Call == nil {
			return r.Answer, nil
		}

		logger.Debug("awaiting tool result", "server", r.Call.Server, "tool", r.Call.Tool)
		conv.Append(text, a.execute(ctx, catalog, r.Call))
	}

	return "", goerr.Wrap(ErrBudgetExceeded, "no final answer", goerr.V("loop_limit", a.loopLimit))
}

func (a *Agent) generate(ctx context.Context, turns []string) (text string, err error) {
	if h := trace.HandlerFrom(ctx); h != nil {
		ctx = h.StartModelCall(ctx, len(turns))
		defer func() { h.EndModelCall(ctx, text, err) }()
	}
	return a.llm.Generate(ctx, turns)
}

// execute runs one tool call and renders its outcome as a synthetic turn.
func (a *Agent) execute(ctx context.Context, catalog []session.ToolDescriptor, call *ToolCall) string {
	h := trace.HandlerFrom(ctx)
	if h != nil {
		ctx = h.StartToolCall(ctx, call.Server, call.Tool, call.Arguments)
	}

	text, err := a.callTool(ctx, catalog, call)
	if h != nil {
		h.EndToolCall(ctx, text, err)
	}

	if err != nil {
		return toolErrorEntry(err)
	}
	return toolResultEntry(call.Tool, text)
}

// callTool returns the truncated text output of the tool. A rejected call, a
// failed call and an IsError result are all errors.
func (a *Agent) callTool(ctx context.Context, catalog []session.ToolDescriptor, call *ToolCall) (string, error) {
	logger := ctxlog.From(ctx)

	if err := a.toolRequestHook(ctx, *call); err != nil {
		logger.Warn("tool request rejected by hook", "tool", call.Tool, "error", err)
		return "", err
	}

	if a.validateArgs {
		if err := validateArguments(catalog, call); err != nil {
			logger.Warn("invalid tool arguments", "tool", call.Tool, "error", err)
			return "", err
		}
	}

	result, err := a.router.CallTool(ctx, call.Server, call.Tool, call.Arguments)
	if err != nil {
		logger.Error("tool execution failed", "server", call.Server, "tool", call.Tool, "error", err)
		return "", err
	}

	text := truncate(result.Text(), a.maxResultSize)
	if result != nil && result.IsError {
		err := goerr.New(text, goerr.V("server", call.Server), goerr.V("tool", call.Tool))
		logger.Warn("tool reported an error", "server", call.Server, "tool", call.Tool, "error", err)
		return "", err
	}

	return text, nil
}
