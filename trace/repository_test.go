package trace_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/secagent/trace"
)

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	repo := trace.NewFileRepository(dir)

	started := time.Date(2025, 4, 1, 23, 30, 0, 0, time.UTC)
	tr := &trace.Trace{
		TraceID:   "run-1",
		StartedAt: started,
		Metadata:  trace.TraceMetadata{Question: "Is X safe?", Answer: "yes"},
		RootSpan: &trace.Span{
			SpanID: "span-1",
			Kind:   trace.SpanKindRun,
			Name:   "run",
			Status: trace.SpanStatusOK,
		},
	}

	gt.NoError(t, repo.Save(context.Background(), tr))
	gt.Equal(t, repo.Path(tr), filepath.Join(dir, "2025-04-01", "run-1.json"))

	raw, err := os.ReadFile(repo.Path(tr))
	gt.NoError(t, err)

	var loaded trace.Trace
	gt.NoError(t, json.Unmarshal(raw, &loaded))
	gt.Equal(t, loaded.TraceID, "run-1")
	gt.Equal(t, loaded.Metadata.Answer, "yes")
	gt.Equal(t, loaded.RootSpan.Kind, trace.SpanKindRun)
}

func TestFileRepositoryUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	gt.NoError(t, os.WriteFile(blocker, []byte("file"), 0600))

	repo := trace.NewFileRepository(blocker)
	err := repo.Save(context.Background(), &trace.Trace{TraceID: "x", StartedAt: time.Now()})
	gt.Error(t, err)
}
