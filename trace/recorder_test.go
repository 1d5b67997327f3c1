package trace_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent/trace"
)

func TestHandlerContext(t *testing.T) {
	ctx := context.Background()
	gt.Value(t, trace.HandlerFrom(ctx)).Nil()

	rec := trace.New()
	ctx = trace.WithHandler(ctx, rec)
	gt.Equal[trace.Handler](t, trace.HandlerFrom(ctx), rec)
}

func TestRecorderRun(t *testing.T) {
	repo := trace.NewMemoryRepository()
	rec := trace.New(
		trace.WithRepository(repo),
		trace.WithLabels(map[string]string{"mode": "cli"}),
	)

	ctx := rec.StartRun(context.Background(), "run-1", "Is X safe?")

	modelCtx := rec.StartModelCall(ctx, 1)
	rec.EndModelCall(modelCtx, `{"server":"vuln-db","tool":"cve"}`, nil)

	toolCtx := rec.StartToolCall(ctx, "vuln-db", "cve", map[string]any{"product": "X"})
	rec.EndToolCall(toolCtx, "CVE-2024-0001", nil)

	rec.AddEvent(ctx, "malformed_reply", map[string]any{"error": "invalid JSON"})

	modelCtx = rec.StartModelCall(ctx, 3)
	rec.EndModelCall(modelCtx, "", errors.New("quota exceeded"))

	rec.EndRun(ctx, "error in reasoning loop", errors.New("quota exceeded"))
	gt.NoError(t, rec.Finish(ctx))

	traces := repo.Traces()
	gt.A(t, traces).Length(1)
	tr := traces[0]
	gt.Equal(t, tr.TraceID, "run-1")
	gt.Equal(t, tr.Metadata.Question, "Is X safe?")
	gt.Equal(t, tr.Metadata.Answer, "error in reasoning loop")
	gt.Equal(t, tr.Metadata.Labels["mode"], "cli")
	gt.False(t, tr.EndedAt.IsZero())

	root := tr.RootSpan
	gt.Equal(t, root.Kind, trace.SpanKindRun)
	gt.Equal(t, root.Status, trace.SpanStatusError)
	gt.A(t, root.Children).Length(4)

	gt.Equal(t, root.Children[0].Kind, trace.SpanKindModelCall)
	gt.Equal(t, root.Children[0].ParentID, root.SpanID)
	gt.Equal(t, root.Children[0].ModelCall.Turns, 1)
	gt.Equal(t, root.Children[0].Status, trace.SpanStatusOK)

	tool := root.Children[1]
	gt.Equal(t, tool.Kind, trace.SpanKindToolCall)
	gt.Equal(t, tool.Name, "vuln-db/cve")
	gt.Equal(t, tool.ToolCall.Args, map[string]any{"product": "X"})
	gt.Equal(t, tool.ToolCall.Result, "CVE-2024-0001")

	gt.Equal(t, root.Children[2].Kind, trace.SpanKindEvent)
	gt.Equal(t, root.Children[2].Event.Kind, "malformed_reply")

	failed := root.Children[3]
	gt.Equal(t, failed.Status, trace.SpanStatusError)
	gt.Equal(t, failed.Error, "quota exceeded")
	gt.Equal(t, failed.ModelCall.Turns, 3)
}

func TestRecorderToolError(t *testing.T) {
	rec := trace.New()
	ctx := rec.StartRun(context.Background(), "", "q")

	toolCtx := rec.StartToolCall(ctx, "gh", "repo", nil)
	rec.EndToolCall(toolCtx, "", errors.New("not found"))

	tr := trace.TraceFrom(ctx)
	gt.NotNil(t, tr)
	gt.True(t, tr.TraceID != "")
	span := tr.RootSpan.Children[0]
	gt.Equal(t, span.Status, trace.SpanStatusError)
	gt.Equal(t, span.ToolCall.Error, "not found")

	// no repository
	gt.NoError(t, rec.Finish(ctx))
}

func TestRecorderWithoutRun(t *testing.T) {
	rec := trace.New(trace.WithRepository(trace.NewMemoryRepository()))
	ctx := context.Background()

	gt.Equal(t, rec.StartModelCall(ctx, 1), ctx)
	rec.EndModelCall(ctx, "x", nil)
	rec.AddEvent(ctx, "ignored", nil)
	gt.Nil(t, trace.TraceFrom(ctx))
	gt.NoError(t, rec.Finish(ctx))
}

func TestRecorderConcurrentRuns(t *testing.T) {
	repo := trace.NewMemoryRepository()
	rec := trace.New(trace.WithRepository(repo))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := rec.StartRun(context.Background(), "", "q")
			for j := 0; j < 4; j++ {
				mctx := rec.StartModelCall(ctx, j+1)
				rec.EndModelCall(mctx, "text", nil)
			}
			rec.EndRun(ctx, "answer", nil)
			gt.NoError(t, rec.Finish(ctx))
		}()
	}
	wg.Wait()

	traces := repo.Traces()
	gt.A(t, traces).Length(8)
	for _, tr := range traces {
		gt.A(t, tr.RootSpan.Children).Length(4)
	}
}
