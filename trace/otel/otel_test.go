package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent/trace"
	traceOtel "github.com/m-mizutani/secagent/trace/otel"
	"go.opentelemetry.io/otel/codes"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestHandler() (trace.Handler, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdkTrace.NewTracerProvider(
		sdkTrace.WithSyncer(exporter),
	)
	h := traceOtel.New(traceOtel.WithTracerProvider(tp))
	return h, exporter
}

func TestOTelHandlerRun(t *testing.T) {
	h, exporter := setupTestHandler()

	ctx := h.StartRun(context.Background(), "run-1", "Is X safe?")
	mctx := h.StartModelCall(ctx, 1)
	h.EndModelCall(mctx, `{"server":"vuln-db","tool":"cve"}`, nil)
	tctx := h.StartToolCall(ctx, "vuln-db", "cve", map[string]any{"product": "X"})
	h.EndToolCall(tctx, "CVE-2024-0001", nil)
	h.AddEvent(ctx, "note", map[string]any{"k": "v"})
	h.EndRun(ctx, "answer", nil)
	gt.NoError(t, h.Finish(ctx))

	spans := exporter.GetSpans()
	gt.A(t, spans).Length(3)

	// Spans are exported in end order.
	gt.Equal(t, spans[0].Name, "model_call")
	gt.Equal(t, spans[1].Name, "tool:vuln-db/cve")
	gt.Equal(t, spans[2].Name, "run")
	gt.Equal(t, spans[0].Parent.SpanID(), spans[2].SpanContext.SpanID())
	gt.Equal(t, spans[1].Parent.SpanID(), spans[2].SpanContext.SpanID())
	gt.A(t, spans[2].Events).Length(1)
	gt.Equal(t, spans[2].Events[0].Name, "note")
}

func TestOTelHandlerError(t *testing.T) {
	h, exporter := setupTestHandler()

	ctx := h.StartRun(context.Background(), "run-1", "q")
	tctx := h.StartToolCall(ctx, "gh", "repo", nil)
	h.EndToolCall(tctx, "", errors.New("not found"))
	h.EndRun(ctx, "", errors.New("loop limit exceeded"))

	spans := exporter.GetSpans()
	gt.A(t, spans).Length(2)
	gt.Equal(t, spans[0].Status.Code, codes.Error)
	gt.Equal(t, spans[0].Status.Description, "not found")
	gt.A(t, spans[0].Events).Length(1) // recorded error
	gt.Equal(t, spans[1].Status.Code, codes.Error)
}
