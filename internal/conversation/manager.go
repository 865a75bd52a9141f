// internal/conversation/manager.go
package conversation

import (
	"context"
	"sort"
	"sync"

	"loan-assistant/internal/common/auth"
	apperrors "loan-assistant/internal/common/errors"
)

// Manager keeps the open sessions of one process. Sessions share the
// scheduler and the read-only lookups; each gets its own identity.
//
// The map is guarded so Get and Len are safe from any goroutine. The engines
// themselves still belong to the scheduler thread.
type Manager struct {
	mu       sync.Mutex
	deps     Deps
	opts     []Option
	sessions map[string]*Engine
}

func NewManager(deps Deps, opts ...Option) *Manager {
	return &Manager{
		deps:     deps,
		opts:     opts,
		sessions: make(map[string]*Engine),
	}
}

// Open starts a session for the user behind identity. A nil identity falls
// back to the provider in the manager's Deps.
func (m *Manager) Open(ctx context.Context, identity auth.Provider, opts ...Option) (*Engine, error) {
	deps := m.deps
	if identity != nil {
		deps.Identity = identity
	}
	all := append(append([]Option(nil), m.opts...), opts...)
	e, err := New(ctx, deps, all...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.sessions[e.ID()]; ok {
		prev.Close()
	}
	m.sessions[e.ID()] = e
	return e, nil
}

func (m *Manager) Get(id string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NewSessionClosedError(id)
	}
	return e, nil
}

// Close tears one session down. It reports whether the session existed.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		e.Close()
	}
	return ok
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Engine)
	m.mu.Unlock()

	for _, e := range sessions {
		e.Close()
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IDs lists open sessions in sorted order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
