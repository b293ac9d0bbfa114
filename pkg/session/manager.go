// Package session manages the lifecycle of editing sessions: one Editor
// per campaign, shared by concurrent hosts (HTTP handlers, MCP tools) and
// discarded when the last holder releases it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zapflowhq/zapflow"
	"github.com/zapflowhq/zapflow/internal/logging"
	"github.com/zapflowhq/zapflow/pkg/observability"
	"github.com/zapflowhq/zapflow/pkg/ports"
)

// entry holds an editor and its reference count.
type entry struct {
	editor *zapflow.Editor
	refs   int
}

// Manager hands out per-campaign editors. It uses reference counting to
// garbage collect sessions no host is holding, so a campaign's model lives
// exactly as long as someone is editing it.
type Manager struct {
	store   ports.DocumentStore
	logger  *slog.Logger
	metrics *observability.Metrics

	mu       sync.Mutex
	sessions map[string]*entry
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the manager and its editors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithMetrics attaches Prometheus collectors to spawned editors.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// NewManager creates a session manager over the given persistence store.
func NewManager(store ports.DocumentStore, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		logger:   logging.NewNop(),
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire returns the campaign's editor, loading its document on first
// acquisition. The returned release func must be called when the holder is
// done; the session is dropped when the last holder releases it.
func (m *Manager) Acquire(ctx context.Context, campaignID string) (*zapflow.Editor, func(), error) {
	m.mu.Lock()
	if ent, ok := m.sessions[campaignID]; ok {
		ent.refs++
		m.mu.Unlock()
		return ent.editor, m.releaseFunc(campaignID), nil
	}
	m.mu.Unlock()

	// Build outside the lock: Load hits the store.
	editor, err := zapflow.New(campaignID,
		zapflow.WithStore(m.store),
		zapflow.WithLogger(m.logger),
		zapflow.WithMetrics(m.metrics),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create editor: %w", err)
	}
	if err := editor.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load campaign %s: %w", campaignID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ent, ok := m.sessions[campaignID]; ok {
		// Lost the race; reuse the session that won.
		ent.refs++
		return ent.editor, m.releaseFunc(campaignID), nil
	}
	m.sessions[campaignID] = &entry{editor: editor, refs: 1}
	m.logger.Debug("Session opened", "campaign", campaignID)
	return editor, m.releaseFunc(campaignID), nil
}

// Active returns the campaign IDs with a live session.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) releaseFunc(campaignID string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			ent, ok := m.sessions[campaignID]
			if !ok {
				return
			}
			ent.refs--
			if ent.refs <= 0 {
				delete(m.sessions, campaignID)
				m.logger.Debug("Session closed", "campaign", campaignID)
			}
		})
	}
}
