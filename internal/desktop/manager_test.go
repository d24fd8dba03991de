package desktop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAssignsIDAndFocus(t *testing.T) {
	m := NewManager()

	w := m.Open(AppNotepad, "readme.txt", "/documents/readme.txt", Bounds{})
	require.NotNil(t, w)
	assert.True(t, strings.HasPrefix(w.ID, "win_"))
	assert.Equal(t, StateNormal, w.State)
	assert.Equal(t, defaultWidth, w.Bounds.Width)

	focused, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, w.ID, focused.ID)
}

func TestOpenCascadesPositions(t *testing.T) {
	m := NewManager()

	a := m.Open(AppNotepad, "a", "", Bounds{})
	b := m.Open(AppNotepad, "b", "", Bounds{})

	assert.Equal(t, a.Bounds.X+cascadeStep, b.Bounds.X)
	assert.Equal(t, a.Bounds.Y+cascadeStep, b.Bounds.Y)
}

func TestFocusRaisesAndRestores(t *testing.T) {
	m := NewManager()

	a := m.Open(AppExplorer, "explorer", "/", Bounds{})
	b := m.Open(AppPaint, "paint", "", Bounds{})

	require.True(t, m.Minimize(a.ID))
	require.True(t, m.Focus(a.ID))

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, StateNormal, got.State)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestMinimizePassesFocus(t *testing.T) {
	m := NewManager()

	a := m.Open(AppNotepad, "a", "", Bounds{})
	b := m.Open(AppNotepad, "b", "", Bounds{})

	require.True(t, m.Minimize(b.ID))

	focused, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, a.ID, focused.ID)
}

func TestMoveAndResize(t *testing.T) {
	m := NewManager()
	w := m.Open(AppMinesweeper, "minesweeper", "", Bounds{})

	require.True(t, m.Move(w.ID, 100, 120))
	require.True(t, m.Resize(w.ID, 300, 200))
	assert.False(t, m.Resize(w.ID, -1, 200))

	got, _ := m.Get(w.ID)
	assert.Equal(t, Bounds{X: 100, Y: 120, Width: 300, Height: 200}, got.Bounds)
}

func TestSetState(t *testing.T) {
	m := NewManager()
	w := m.Open(AppNotepad, "a", "", Bounds{})

	require.True(t, m.SetState(w.ID, StateMaximized))
	got, _ := m.Get(w.ID)
	assert.Equal(t, StateMaximized, got.State)

	assert.False(t, m.SetState(w.ID, "sideways"))
	assert.False(t, m.SetState("win_missing", StateNormal))
}

func TestClosePassesFocusToTopmost(t *testing.T) {
	m := NewManager()

	a := m.Open(AppNotepad, "a", "", Bounds{})
	b := m.Open(AppNotepad, "b", "", Bounds{})
	c := m.Open(AppNotepad, "c", "", Bounds{})

	require.True(t, m.Close(c.ID))

	focused, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, b.ID, focused.ID)

	require.True(t, m.Close(b.ID))
	require.True(t, m.Close(a.ID))

	_, ok = m.Focused()
	assert.False(t, ok)
	assert.False(t, m.Close(a.ID))
}

func TestStats(t *testing.T) {
	m := NewManager()

	m.Open(AppNotepad, "a", "", Bounds{})
	b := m.Open(AppPaint, "b", "", Bounds{})
	m.Minimize(b.ID)

	s := m.Stats()
	assert.Equal(t, 2, s.TotalWindows)
	assert.Equal(t, 1, s.Minimized)
	require.NotNil(t, s.Focused)
	assert.Equal(t, "a", *s.Focused)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	m := NewManager()

	m.Open(AppExplorer, "explorer", "/documents", Bounds{X: 10, Y: 10, Width: 400, Height: 300})
	b := m.Open(AppNotepad, "notes", "/documents/notes.txt", Bounds{X: 60, Y: 60, Width: 500, Height: 400})
	m.Minimize(b.ID)

	snap := m.Snapshot()
	require.Len(t, snap, 2)

	restored := NewManager()
	restored.Restore(snap)

	list := restored.List()
	require.Len(t, list, 2)
	assert.Equal(t, "/documents", list[0].Path)
	assert.Equal(t, StateMinimized, list[1].State)

	// Topmost non-minimized window gets focus.
	focused, ok := restored.Focused()
	require.True(t, ok)
	assert.Equal(t, "explorer", focused.Title)
}

func TestRestoreGeneratesMissingIDs(t *testing.T) {
	m := NewManager()
	m.Restore([]Window{{App: AppNotepad, Title: "orphan", State: StateNormal, ZIndex: 1}})

	list := m.List()
	require.Len(t, list, 1)
	assert.True(t, strings.HasPrefix(list[0].ID, "win_"))
}

func TestMutationsReturnCopies(t *testing.T) {
	m := NewManager()
	w := m.Open(AppNotepad, "a", "", Bounds{})

	w.Title = "tampered"
	got, _ := m.Get(w.ID)
	assert.Equal(t, "a", got.Title)
}
