package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Manager owns the live connections to every configured tool provider and routes
// tool calls to them by provider name.
type Manager struct {
	providers []ProviderConfig
	connector Connector

	mu       sync.RWMutex
	sessions map[string]*providerSession
	// order records connect order so Close can release in reverse.
	order []string
}

type providerSession struct {
	name   string
	client Client
	// inflight counts CallTool requests still using client.
	inflight sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithConnector replaces the connector used to launch providers. Default is
// StdioConnector.
func WithConnector(connector Connector) Option {
	return func(m *Manager) {
		m.connector = connector
	}
}

// New creates a Manager for the given providers. No process is launched until
// Connect is called.
func New(providers []ProviderConfig, options ...Option) *Manager {
	m := &Manager{
		providers: providers,
		connector: StdioConnector,
		sessions:  make(map[string]*providerSession),
	}

	for _, opt := range options {
		opt(m)
	}

	return m
}

// Connect launches every configured provider concurrently and performs its
// handshake. A provider that fails is logged and skipped; the remaining providers
// are still connected. Providers that already have a live session are left alone.
func (m *Manager) Connect(ctx context.Context) {
	logger := ctxlog.From(ctx)

	var wg sync.WaitGroup
	seen := make(map[string]struct{}, len(m.providers))
	for _, cfg := range m.providers {
		if _, ok := seen[cfg.Name]; ok {
			logger.Warn("duplicated provider name, skipped", "provider", cfg.Name)
			continue
		}
		seen[cfg.Name] = struct{}{}

		if m.has(cfg.Name) {
			logger.Debug("provider already connected", "provider", cfg.Name)
			continue
		}

		wg.Add(1)
		go func(cfg ProviderConfig) {
			defer wg.Done()

			client, err := m.connector(ctx, cfg)
			if err != nil {
				err = goerr.Wrap(err, "failed to connect to provider",
					goerr.V("provider", cfg.Name),
					goerr.Tag(ErrTagConnection),
				)
				logger.Error("provider connection failed", "provider", cfg.Name, "error", err)
				return
			}

			if !m.add(cfg.Name, client) {
				logger.Warn("provider connected concurrently, closing extra session", "provider", cfg.Name)
				if err := client.Close(); err != nil {
					logger.Warn("failed to close duplicated session", "provider", cfg.Name, "error", err)
				}
				return
			}

			logger.Info("connected to provider", "provider", cfg.Name)
		}(cfg)
	}
	wg.Wait()
}

func (m *Manager) has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[name]
	return ok
}

func (m *Manager) add(name string, client Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[name]; ok {
		return false
	}
	m.sessions[name] = &providerSession{name: name, client: client}
	m.order = append(m.order, name)
	return true
}

// Providers returns the names of live sessions in lexical order.
func (m *Manager) Providers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.sessions))
	for name := range m.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) snapshot() []*providerSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*providerSession, 0, len(m.sessions))
	for _, ssn := range m.sessions {
		sessions = append(sessions, ssn)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].name < sessions[j].name
	})
	return sessions
}

// ListTools asks every live provider for its tools and flattens them, providers in
// name order and each provider's tools in the order it returned them. The catalog is
// fetched fresh on every call. Any provider failure fails the whole call.
func (m *Manager) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	sessions := m.snapshot()
	catalogs := make([][]ToolDescriptor, len(sessions))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, ssn := range sessions {
		eg.Go(func() error {
			tools, err := ssn.client.ListTools(egCtx)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch tool catalog",
					goerr.V("provider", ssn.name),
					goerr.Tag(ErrTagCatalogFetch),
				)
			}

			descriptors := make([]ToolDescriptor, 0, len(tools))
			for _, tool := range tools {
				d, err := newToolDescriptor(ssn.name, tool)
				if err != nil {
					return goerr.Wrap(err, "invalid tool in catalog",
						goerr.V("provider", ssn.name),
						goerr.Tag(ErrTagCatalogFetch),
					)
				}
				descriptors = append(descriptors, d)
			}
			catalogs[i] = descriptors
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []ToolDescriptor
	for _, c := range catalogs {
		all = append(all, c...)
	}

	ctxlog.From(ctx).Debug("listed tools", "providers", len(sessions), "tools", len(all))
	return all, nil
}

// CallTool runs tool on provider with args and returns the provider's content
// unmodified. ErrUnknownProvider is returned, before any I/O, when provider has no
// live session.
func (m *Manager) CallTool(ctx context.Context, provider, tool string, args map[string]any) (*ToolResult, error) {
	m.mu.RLock()
	ssn, ok := m.sessions[provider]
	if ok {
		ssn.inflight.Add(1)
	}
	m.mu.RUnlock()

	if !ok {
		return nil, goerr.Wrap(ErrUnknownProvider, "provider is not connected",
			goerr.V("provider", provider),
			goerr.V("tool", tool),
		)
	}

	defer ssn.inflight.Done()

	ctxlog.From(ctx).Info("call tool", "provider", provider, "tool", tool, "args", args)

	resp, err := ssn.client.CallTool(ctx, tool, args)
	if err != nil {
		return nil, goerr.Wrap(err, "tool invocation failed",
			goerr.V("provider", provider),
			goerr.V("tool", tool),
			goerr.Tag(ErrTagToolInvocation),
		)
	}
	if resp == nil {
		return &ToolResult{}, nil
	}

	return &ToolResult{
		Content: resp.Content,
		IsError: resp.IsError,
	}, nil
}

// Close releases every live session in reverse connect order. Calls already in
// flight finish before their session is closed; calls made after Close started get
// ErrUnknownProvider. Every session is closed even when an earlier one fails; the
// failures are joined into the returned error. Close is safe after a partial
// Connect and safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	order := m.order
	sessions := m.sessions
	m.order = nil
	m.sessions = make(map[string]*providerSession)
	m.mu.Unlock()

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		ssn, ok := sessions[order[i]]
		if !ok {
			continue
		}
		ssn.inflight.Wait()
		if err := ssn.client.Close(); err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to close provider session", goerr.V("provider", ssn.name)))
		}
	}

	return errors.Join(errs...)
}
