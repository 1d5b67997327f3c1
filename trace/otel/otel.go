// Package otel bridges secagent trace events to OpenTelemetry spans, so runs can
// be exported to any OTel-compatible backend.
//
//	agent := secagent.New(llmClient, manager, secagent.WithTrace(otel.New()))
package otel

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/secagent/trace"
	otelAPI "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/m-mizutani/secagent"
)

// Option is a functional option for configuring the OTel handler.
type Option func(*handler)

// WithTracerProvider sets an explicit TracerProvider.
// If not set, the global TracerProvider is used.
func WithTracerProvider(tp otelTrace.TracerProvider) Option {
	return func(h *handler) {
		h.tracerProvider = tp
	}
}

type handler struct {
	tracerProvider otelTrace.TracerProvider
	tracer         otelTrace.Tracer
}

// New creates a new OTel trace handler.
func New(opts ...Option) trace.Handler {
	h := &handler{}
	for _, opt := range opts {
		opt(h)
	}

	if h.tracerProvider == nil {
		h.tracerProvider = otelAPI.GetTracerProvider()
	}
	h.tracer = h.tracerProvider.Tracer(tracerName)

	return h
}

func endSpan(ctx context.Context, err error) {
	span := otelTrace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (h *handler) StartRun(ctx context.Context, runID, question string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "run",
		otelTrace.WithSpanKind(otelTrace.SpanKindInternal),
		otelTrace.WithAttributes(runIDAttr(runID), questionAttr(question)),
	)
	return ctx
}

func (h *handler) EndRun(ctx context.Context, answer string, err error) {
	otelTrace.SpanFromContext(ctx).SetAttributes(answerLengthAttr(len(answer)))
	endSpan(ctx, err)
}

func (h *handler) StartModelCall(ctx context.Context, turns int) context.Context {
	ctx, _ = h.tracer.Start(ctx, "model_call",
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
		otelTrace.WithAttributes(modelTurnsAttr(turns)),
	)
	return ctx
}

func (h *handler) EndModelCall(ctx context.Context, response string, err error) {
	otelTrace.SpanFromContext(ctx).SetAttributes(modelResponseLengthAttr(len(response)))
	endSpan(ctx, err)
}

func (h *handler) StartToolCall(ctx context.Context, server, tool string, args map[string]any) context.Context {
	ctx, span := h.tracer.Start(ctx, "tool:"+server+"/"+tool,
		otelTrace.WithSpanKind(otelTrace.SpanKindClient),
		otelTrace.WithAttributes(toolServerAttr(server), toolNameAttr(tool)),
	)
	if args != nil {
		if b, err := json.Marshal(args); err == nil {
			span.SetAttributes(toolArgsAttr(string(b)))
		}
	}
	return ctx
}

func (h *handler) EndToolCall(ctx context.Context, result string, err error) {
	endSpan(ctx, err)
}

func (h *handler) AddEvent(ctx context.Context, kind string, data any) {
	span := otelTrace.SpanFromContext(ctx)
	if data == nil {
		span.AddEvent(kind)
		return
	}

	b, err := json.Marshal(data)
	if err != nil {
		span.AddEvent(kind)
		return
	}
	span.AddEvent(kind, otelTrace.WithAttributes(eventDataAttr(string(b))))
}

func (h *handler) Finish(_ context.Context) error {
	// Spans are exported by the TracerProvider's SpanProcessor.
	return nil
}
