package desktop

import (
	"sort"
	"sync"
	"time"

	"github.com/retrodesk/reanimated/internal/shared/id"
)

// Manager orchestrates window lifecycle on the simulated desktop.
type Manager struct {
	mu        sync.RWMutex
	windows   map[string]*Window
	focusedID string
	nextZ     int
}

// NewManager creates an empty desktop.
func NewManager() *Manager {
	return &Manager{
		windows: make(map[string]*Window),
	}
}

const (
	defaultWidth  = 640
	defaultHeight = 480
	cascadeStep   = 24
)

// Open creates a window and gives it focus. A zero Bounds gets the default
// size at a cascaded position so stacked windows stay visible.
func (m *Manager) Open(app, title, path string, bounds Bounds) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	if bounds.Width <= 0 || bounds.Height <= 0 {
		offset := (len(m.windows) % 8) * cascadeStep
		bounds = Bounds{X: 48 + offset, Y: 48 + offset, Width: defaultWidth, Height: defaultHeight}
	}
	if title == "" {
		title = "Untitled"
	}

	m.nextZ++
	w := &Window{
		ID:       id.NewWindowID().String(),
		App:      app,
		Title:    title,
		Path:     path,
		State:    StateNormal,
		Bounds:   bounds,
		ZIndex:   m.nextZ,
		OpenedAt: time.Now(),
	}
	m.windows[w.ID] = w
	m.focusedID = w.ID

	return copyWindow(w)
}

// Get retrieves a window by ID.
func (m *Manager) Get(id string) (*Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[id]
	if !ok {
		return nil, false
	}
	return copyWindow(w), true
}

// List returns all windows ordered bottom to top.
func (m *Manager) List() []*Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, copyWindow(w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Focus raises a window to the top of the stack, restoring it if minimized.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}

	if w.State == StateMinimized {
		w.State = StateNormal
	}
	m.nextZ++
	w.ZIndex = m.nextZ
	m.focusedID = id
	return true
}

// Minimize hides a window; focus passes to the topmost remaining window.
func (m *Manager) Minimize(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}

	w.State = StateMinimized
	if m.focusedID == id {
		m.focusedID = m.topmostLocked()
	}
	return true
}

// Move repositions a window.
func (m *Manager) Move(id string, x, y int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	w.Bounds.X = x
	w.Bounds.Y = y
	return true
}

// Resize changes a window's dimensions. Nonpositive sizes are rejected.
func (m *Manager) Resize(id string, width, height int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok || width <= 0 || height <= 0 {
		return false
	}
	w.Bounds.Width = width
	w.Bounds.Height = height
	return true
}

// SetState switches a window between normal, minimized and maximized.
func (m *Manager) SetState(id, state string) bool {
	switch state {
	case StateNormal, StateMinimized, StateMaximized:
	default:
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	w.State = state
	if state == StateMinimized && m.focusedID == id {
		m.focusedID = m.topmostLocked()
	}
	return true
}

// Close destroys a window; focus passes to the topmost remaining window.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[id]; !ok {
		return false
	}
	delete(m.windows, id)
	if m.focusedID == id {
		m.focusedID = m.topmostLocked()
	}
	return true
}

// CloseAll clears the desktop.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.windows = make(map[string]*Window)
	m.focusedID = ""
}

// Focused returns the focused window, if any.
func (m *Manager) Focused() (*Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[m.focusedID]
	if !ok {
		return nil, false
	}
	return copyWindow(w), true
}

// Stats returns desktop statistics.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{TotalWindows: len(m.windows)}
	for _, w := range m.windows {
		if w.State == StateMinimized {
			s.Minimized++
		}
	}
	if w, ok := m.windows[m.focusedID]; ok {
		title := w.Title
		s.Focused = &title
	}
	return s
}

// Snapshot captures every window for session persistence, bottom to top.
func (m *Manager) Snapshot() []Window {
	windows := m.List()
	out := make([]Window, len(windows))
	for i, w := range windows {
		out[i] = *w
	}
	return out
}

// Restore replaces the desktop with a saved snapshot. Windows keep their
// saved geometry and stacking; the topmost window receives focus.
func (m *Manager) Restore(windows []Window) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.windows = make(map[string]*Window, len(windows))
	m.focusedID = ""
	m.nextZ = 0

	for i := range windows {
		w := windows[i]
		if w.ID == "" {
			w.ID = id.NewWindowID().String()
		}
		if w.ZIndex > m.nextZ {
			m.nextZ = w.ZIndex
		}
		m.windows[w.ID] = &w
	}
	m.focusedID = m.topmostLocked()
}

// topmostLocked picks the non-minimized window with the highest z-index.
func (m *Manager) topmostLocked() string {
	var best *Window
	for _, w := range m.windows {
		if w.State == StateMinimized {
			continue
		}
		if best == nil || w.ZIndex > best.ZIndex {
			best = w
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func copyWindow(w *Window) *Window {
	cp := *w
	return &cp
}
