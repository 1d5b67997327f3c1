package trace

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Option is a functional option for configuring a Recorder.
type Option func(*Recorder)

// WithRepository sets the repository for persisting trace data.
func WithRepository(repo Repository) Option {
	return func(r *Recorder) {
		r.repo = repo
	}
}

// WithLabels sets labels copied into the metadata of every trace.
func WithLabels(labels map[string]string) Option {
	return func(r *Recorder) {
		r.labels = labels
	}
}

// Recorder collects tracing data of agent runs into in-memory Trace structures.
// The trace of a run lives in the context returned by StartRun, so one Recorder
// can serve concurrent runs.
type Recorder struct {
	mu     sync.Mutex
	repo   Repository
	labels map[string]string
}

// New creates a new Recorder with the given options.
func New(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// context key types
type handlerKey struct{}
type traceKey struct{}
type currentSpanKey struct{}

// WithHandler stores the Handler in the context.
func WithHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey{}, h)
}

// HandlerFrom retrieves the Handler from the context. Returns nil if not set.
func HandlerFrom(ctx context.Context) Handler {
	h, _ := ctx.Value(handlerKey{}).(Handler)
	return h
}

// TraceFrom returns the trace recorded by a Recorder in ctx, or nil.
func TraceFrom(ctx context.Context) *Trace {
	t, _ := ctx.Value(traceKey{}).(*Trace)
	return t
}

func withCurrentSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, currentSpanKey{}, span)
}

func currentSpanFrom(ctx context.Context) *Span {
	s, _ := ctx.Value(currentSpanKey{}).(*Span)
	return s
}

func newSpanID() string {
	return uuid.New().String()
}

// StartRun starts a new trace whose ID is runID. An empty runID gets a UUID v7.
func (r *Recorder) StartRun(ctx context.Context, runID, question string) context.Context {
	now := time.Now()
	span := &Span{
		SpanID:    newSpanID(),
		Kind:      SpanKindRun,
		Name:      "run",
		StartedAt: now,
		Status:    SpanStatusOK,
	}

	if runID == "" {
		runID = uuid.Must(uuid.NewV7()).String()
	}

	t := &Trace{
		TraceID:  runID,
		RootSpan: span,
		Metadata: TraceMetadata{
			Question: question,
			Labels:   r.labels,
		},
		StartedAt: now,
	}

	ctx = context.WithValue(ctx, traceKey{}, t)
	return withCurrentSpan(ctx, span)
}

// EndRun ends the root span and records the answer.
func (r *Recorder) EndRun(ctx context.Context, answer string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindRun {
		return
	}
	span.end(err)

	if t := TraceFrom(ctx); t != nil {
		t.EndedAt = span.EndedAt
		t.Metadata.Answer = answer
	}
}

// StartModelCall starts a model_call span as a child of the current span.
func (r *Recorder) StartModelCall(ctx context.Context, turns int) context.Context {
	return r.startChildSpan(ctx, &Span{
		Kind:      SpanKindModelCall,
		Name:      "model_call",
		ModelCall: &ModelCallData{Turns: turns},
	})
}

// EndModelCall ends the model_call span.
func (r *Recorder) EndModelCall(ctx context.Context, response string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindModelCall {
		return
	}
	span.end(err)
	span.ModelCall.Response = response
}

// StartToolCall starts a tool_call span as a child of the current span.
func (r *Recorder) StartToolCall(ctx context.Context, server, tool string, args map[string]any) context.Context {
	return r.startChildSpan(ctx, &Span{
		Kind: SpanKindToolCall,
		Name: server + "/" + tool,
		ToolCall: &ToolCallData{
			Server: server,
			Tool:   tool,
			Args:   args,
		},
	})
}

// EndToolCall ends the tool_call span with the result.
func (r *Recorder) EndToolCall(ctx context.Context, result string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := currentSpanFrom(ctx)
	if span == nil || span.Kind != SpanKindToolCall {
		return
	}
	span.end(err)
	span.ToolCall.Result = result
	if err != nil {
		span.ToolCall.Error = err.Error()
	}
}

// AddEvent adds an event span as a child of the current span.
func (r *Recorder) AddEvent(ctx context.Context, kind string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := currentSpanFrom(ctx)
	if parent == nil {
		return
	}

	now := time.Now()
	parent.Children = append(parent.Children, &Span{
		SpanID:    newSpanID(),
		ParentID:  parent.SpanID,
		Kind:      SpanKindEvent,
		Name:      kind,
		StartedAt: now,
		EndedAt:   now,
		Status:    SpanStatusOK,
		Event: &EventData{
			Kind: kind,
			Data: data,
		},
	})
}

// Finish persists the trace in ctx to the Repository.
func (r *Recorder) Finish(ctx context.Context) error {
	t := TraceFrom(ctx)
	if t == nil || r.repo == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo.Save(ctx, t)
}

func (r *Recorder) startChildSpan(ctx context.Context, span *Span) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := currentSpanFrom(ctx)
	if parent == nil {
		return ctx
	}

	span.SpanID = newSpanID()
	span.ParentID = parent.SpanID
	span.StartedAt = time.Now()
	span.Status = SpanStatusOK

	parent.Children = append(parent.Children, span)
	return withCurrentSpan(ctx, span)
}
