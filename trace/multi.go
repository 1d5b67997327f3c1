package trace

import (
	"context"
	"errors"
)

// multiHandler fans out trace events to multiple Handler implementations.
// Each handler receives its own isolated context.
type multiHandler struct {
	handlers []Handler
}

// Multi creates a Handler that forwards all events to the given handlers.
func Multi(handlers ...Handler) Handler {
	return &multiHandler{handlers: handlers}
}

type multiCtxKey struct{}

// getContexts retrieves per-handler contexts from the context.
// If not found, returns the base context for each handler.
func (m *multiHandler) getContexts(ctx context.Context) []context.Context {
	if v, ok := ctx.Value(multiCtxKey{}).([]context.Context); ok {
		return v
	}
	ctxs := make([]context.Context, len(m.handlers))
	for i := range ctxs {
		ctxs[i] = ctx
	}
	return ctxs
}

func (m *multiHandler) start(ctx context.Context, fn func(h Handler, ctx context.Context) context.Context) context.Context {
	parentCtxs := m.getContexts(ctx)
	handlerCtxs := make([]context.Context, len(m.handlers))
	for i, h := range m.handlers {
		handlerCtxs[i] = fn(h, parentCtxs[i])
	}
	return context.WithValue(ctx, multiCtxKey{}, handlerCtxs)
}

func (m *multiHandler) each(ctx context.Context, fn func(h Handler, ctx context.Context)) {
	ctxs := m.getContexts(ctx)
	for i, h := range m.handlers {
		fn(h, ctxs[i])
	}
}

func (m *multiHandler) StartRun(ctx context.Context, runID, question string) context.Context {
	return m.start(ctx, func(h Handler, ctx context.Context) context.Context {
		return h.StartRun(ctx, runID, question)
	})
}

func (m *multiHandler) EndRun(ctx context.Context, answer string, err error) {
	m.each(ctx, func(h Handler, ctx context.Context) { h.EndRun(ctx, answer, err) })
}

func (m *multiHandler) StartModelCall(ctx context.Context, turns int) context.Context {
	return m.start(ctx, func(h Handler, ctx context.Context) context.Context {
		return h.StartModelCall(ctx, turns)
	})
}

func (m *multiHandler) EndModelCall(ctx context.Context, response string, err error) {
	m.each(ctx, func(h Handler, ctx context.Context) { h.EndModelCall(ctx, response, err) })
}

func (m *multiHandler) StartToolCall(ctx context.Context, server, tool string, args map[string]any) context.Context {
	return m.start(ctx, func(h Handler, ctx context.Context) context.Context {
		return h.StartToolCall(ctx, server, tool, args)
	})
}

func (m *multiHandler) EndToolCall(ctx context.Context, result string, err error) {
	m.each(ctx, func(h Handler, ctx context.Context) { h.EndToolCall(ctx, result, err) })
}

func (m *multiHandler) AddEvent(ctx context.Context, kind string, data any) {
	m.each(ctx, func(h Handler, ctx context.Context) { h.AddEvent(ctx, kind, data) })
}

func (m *multiHandler) Finish(ctx context.Context) error {
	var errs []error
	m.each(ctx, func(h Handler, ctx context.Context) {
		if err := h.Finish(ctx); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
