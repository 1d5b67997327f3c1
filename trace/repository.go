package trace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Repository is the interface for persisting trace data.
type Repository interface {
	Save(ctx context.Context, trace *Trace) error
}

// FileRepository persists trace data as JSON files grouped by day.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository that writes under dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Path returns the file path of a trace: {dir}/{YYYY-MM-DD}/{trace_id}.json.
func (r *FileRepository) Path(trace *Trace) string {
	return filepath.Join(r.dir, trace.StartedAt.UTC().Format("2006-01-02"), trace.TraceID+".json")
}

// Save writes the trace as indented JSON.
func (r *FileRepository) Save(_ context.Context, trace *Trace) error {
	filePath := r.Path(trace)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return goerr.Wrap(err, "failed to create trace directory", goerr.V("dir", filepath.Dir(filePath)))
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal trace", goerr.V("trace_id", trace.TraceID))
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write trace file", goerr.V("path", filePath))
	}

	return nil
}

// MemoryRepository keeps traces in memory.
type MemoryRepository struct {
	mu     sync.Mutex
	traces []*Trace
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, trace *Trace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traces = append(r.traces, trace)
	return nil
}

// Traces returns the saved traces in save order.
func (r *MemoryRepository) Traces() []*Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	traces := make([]*Trace, len(r.traces))
	copy(traces, r.traces)
	return traces
}
