// Package session saves and restores desktop sessions: every open window
// with its geometry, stacking order and minimize state, named and stamped
// so the desktop can be put back exactly as it was left.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/desktop"
	"github.com/retrodesk/reanimated/internal/shared/id"
	"github.com/retrodesk/reanimated/internal/storage"
)

// Session is a named snapshot of the desktop.
type Session struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Windows     []desktop.Window `json:"windows"`
}

// Metadata is the listing view of a session, without window payloads.
type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	WindowCount int       `json:"windowCount"`
}

// Stats summarizes the session manager for the status endpoint.
type Stats struct {
	TotalSessions int        `json:"totalSessions"`
	LastSaved     *time.Time `json:"lastSaved,omitempty"`
	LastRestored  *time.Time `json:"lastRestored,omitempty"`
}

// Desktop is the window surface sessions capture and restore.
type Desktop interface {
	Snapshot() []desktop.Window
	Restore(windows []desktop.Window)
}

// Manager handles session persistence.
type Manager struct {
	store   storage.Store
	desktop Desktop
	logger  *zap.Logger

	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a session manager backed by the given store.
func NewManager(store storage.Store, d Desktop, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, desktop: d, logger: logger}
}

// Save captures the current desktop under a new session ID.
func (m *Manager) Save(name, description string) (*Session, error) {
	if name == "" {
		name = "Unnamed session"
	}

	now := time.Now()
	session := &Session{
		ID:          id.NewSessionID().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Windows:     m.desktop.Snapshot(),
	}

	if err := m.persist(session); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	m.logger.Info("session saved",
		zap.String("id", session.ID),
		zap.String("name", name),
		zap.Int("windows", len(session.Windows)))
	return session, nil
}

// Update re-captures the desktop into an existing session.
func (m *Manager) Update(id string) (*Session, error) {
	session, err := m.Load(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.UpdatedAt = now
	session.Windows = m.desktop.Snapshot()

	if err := m.persist(session); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	return session, nil
}

// Load reads a session from the store.
func (m *Manager) Load(id string) (*Session, error) {
	data, err := m.store.Load(sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var session Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

// Restore applies a saved session to the desktop, replacing every open
// window with the saved set.
func (m *Manager) Restore(id string) (*Session, error) {
	session, err := m.Load(id)
	if err != nil {
		return nil, err
	}

	m.desktop.Restore(session.Windows)

	now := time.Now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	m.logger.Info("session restored",
		zap.String("id", session.ID),
		zap.Int("windows", len(session.Windows)))
	return session, nil
}

// List returns metadata for every saved session, newest first. Sessions use
// ULID identifiers, so reverse key order is reverse creation order.
func (m *Manager) List() ([]Metadata, error) {
	keys, err := m.store.Keys(storage.KeySessions + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	out := make([]Metadata, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		data, err := m.store.Load(keys[i])
		if err != nil {
			continue
		}
		var session Session
		if err := sonic.Unmarshal(data, &session); err != nil {
			m.logger.Warn("skipping unreadable session", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		out = append(out, Metadata{
			ID:          session.ID,
			Name:        session.Name,
			Description: session.Description,
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
			WindowCount: len(session.Windows),
		})
	}
	return out, nil
}

// Delete removes a saved session.
func (m *Manager) Delete(id string) error {
	if _, err := m.store.Load(sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if err := m.store.Delete(sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// Stats returns session manager statistics.
func (m *Manager) Stats() Stats {
	keys, err := m.store.Keys(storage.KeySessions + "/")
	if err != nil {
		keys = nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		TotalSessions: len(keys),
		LastSaved:     m.lastSaved,
		LastRestored:  m.lastRestored,
	}
}

func (m *Manager) persist(session *Session) error {
	data, err := sonic.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Save(sessionKey(session.ID), data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return storage.KeySessions + "/" + id
}
