package trace_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent/trace"
)

func TestMulti(t *testing.T) {
	repo1 := trace.NewMemoryRepository()
	repo2 := trace.NewMemoryRepository()
	h := trace.Multi(
		trace.New(trace.WithRepository(repo1)),
		trace.New(trace.WithRepository(repo2)),
	)

	ctx := h.StartRun(context.Background(), "run-1", "q")
	mctx := h.StartModelCall(ctx, 1)
	h.EndModelCall(mctx, "answer", nil)
	tctx := h.StartToolCall(ctx, "gh", "repo", map[string]any{"name": "x"})
	h.EndToolCall(tctx, "ok", nil)
	h.AddEvent(ctx, "note", "data")
	h.EndRun(ctx, "answer", nil)
	gt.NoError(t, h.Finish(ctx))

	for _, repo := range []*trace.MemoryRepository{repo1, repo2} {
		traces := repo.Traces()
		gt.A(t, traces).Length(1)
		gt.Equal(t, traces[0].TraceID, "run-1")
		gt.Equal(t, traces[0].Metadata.Answer, "answer")
		gt.A(t, traces[0].RootSpan.Children).Length(3)
	}

	// The two recorders keep separate span trees.
	gt.True(t, repo1.Traces()[0].RootSpan != repo2.Traces()[0].RootSpan)
}
