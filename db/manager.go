package db

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/voximplant/kit-functions-sdk-sub000/logging"
	"github.com/voximplant/kit-functions-sdk-sub000/observability"
)

// Manager holds the in-memory view of the invocation's key-value scopes.
// Scopes are loaded once with a fan-out-then-join, mutated locally, and
// written back as one put-all batch on commit.
type Manager struct {
	storage    Storage
	logger     logging.Logger
	scopeNames map[Scope]string

	// mu guards values during the concurrent Load fan-out; after Load the
	// invocation owns the manager exclusively.
	mu     sync.Mutex
	values map[Scope]map[string]string
	loaded bool
}

// NewManager creates a manager over the given storage. scopeNames maps each
// available scope to its remote name; scopes with an empty name are absent
// for this invocation (e.g. no conversation scope on call triggers).
func NewManager(storage Storage, scopeNames map[Scope]string, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	values := map[Scope]map[string]string{}
	names := map[Scope]string{}
	for scope, name := range scopeNames {
		if name == "" {
			continue
		}
		names[scope] = name
		values[scope] = map[string]string{}
	}
	return &Manager{
		storage:    storage,
		logger:     logger,
		scopeNames: names,
		values:     values,
	}
}

// Load fetches every available scope concurrently and joins the results.
// A fetch failure is never fatal: the scope simply starts empty. Load
// therefore only returns an error when the context is cancelled. Repeated
// calls are no-ops so local writes are never clobbered by a reload.
func (m *Manager) Load(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for scope, name := range m.scopeNames {
		scope, name := scope, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys, err := m.storage.FetchAll(ctx, name)
			if err != nil {
				m.logger.Warn("db_scope_fetch_failed", "scope", string(scope), "error", err)
				observability.RecordScopeLoad(string(scope), "empty")
				return nil
			}
			observability.RecordScopeLoad(string(scope), "success")
			if keys == nil {
				keys = map[string]string{}
			}
			m.mu.Lock()
			m.values[scope] = keys
			m.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	m.loaded = true
	return nil
}

// Get returns the value for name in the scope. Absent scopes and absent
// names both report false.
func (m *Manager) Get(name string, scope Scope) (string, bool) {
	values, ok := m.values[scope]
	if !ok {
		return "", false
	}
	v, ok := values[name]
	return v, ok
}

// Set stores the value for name in the scope. Returns false when the scope
// is not available for this invocation.
func (m *Manager) Set(name, value string, scope Scope) bool {
	values, ok := m.values[scope]
	if !ok {
		return false
	}
	values[name] = value
	return true
}

// GetAll returns a copy of the whole scope, or nil when the scope is not
// available.
func (m *Manager) GetAll(scope Scope) map[string]string {
	values, ok := m.values[scope]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// Commit writes every available scope back as one put-all batch.
func (m *Manager) Commit(ctx context.Context) error {
	items := make([]Item, 0)
	for scope, values := range m.values {
		name := m.scopeNames[scope]
		for k, v := range values {
			items = append(items, Item{Key: k, Value: v, ScopeName: name})
		}
	}
	if err := m.storage.PutAll(ctx, items); err != nil {
		observability.RecordCommit("error")
		m.logger.Error("db_commit_failed", "error", err)
		return err
	}
	observability.RecordCommit("success")
	return nil
}
