package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/desktop"
	"github.com/retrodesk/reanimated/internal/storage"
)

func newManager(t *testing.T) (*Manager, *desktop.Manager, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	d := desktop.NewManager()
	return NewManager(store, d, zap.NewNop()), d, store
}

func TestSaveAndLoad(t *testing.T) {
	m, d, _ := newManager(t)

	d.Open(desktop.AppNotepad, "notes", "/documents/notes.txt", desktop.Bounds{})
	d.Open(desktop.AppExplorer, "explorer", "/", desktop.Bounds{})

	saved, err := m.Save("workday", "before lunch")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.ID, "sess_"))
	assert.Len(t, saved.Windows, 2)

	loaded, err := m.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "workday", loaded.Name)
	assert.Equal(t, "before lunch", loaded.Description)
	assert.Len(t, loaded.Windows, 2)
	assert.Equal(t, "/documents/notes.txt", loaded.Windows[0].Path)
}

func TestSaveDefaultsName(t *testing.T) {
	m, _, _ := newManager(t)

	saved, err := m.Save("", "")
	require.NoError(t, err)
	assert.Equal(t, "Unnamed session", saved.Name)
}

func TestRestoreReplacesDesktop(t *testing.T) {
	m, d, _ := newManager(t)

	d.Open(desktop.AppNotepad, "keep me", "", desktop.Bounds{})
	saved, err := m.Save("snapshot", "")
	require.NoError(t, err)

	d.CloseAll()
	d.Open(desktop.AppPaint, "scratch", "", desktop.Bounds{})
	d.Open(desktop.AppPaint, "scratch 2", "", desktop.Bounds{})

	restored, err := m.Restore(saved.ID)
	require.NoError(t, err)
	assert.Len(t, restored.Windows, 1)

	list := d.List()
	require.Len(t, list, 1)
	assert.Equal(t, "keep me", list[0].Title)

	stats := m.Stats()
	assert.NotNil(t, stats.LastSaved)
	assert.NotNil(t, stats.LastRestored)
}

func TestRestoreMissing(t *testing.T) {
	m, _, _ := newManager(t)

	_, err := m.Restore("sess_missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateRecaptures(t *testing.T) {
	m, d, _ := newManager(t)

	saved, err := m.Save("evolving", "")
	require.NoError(t, err)
	assert.Empty(t, saved.Windows)

	d.Open(desktop.AppNotepad, "new window", "", desktop.Bounds{})

	updated, err := m.Update(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Len(t, updated.Windows, 1)
	assert.True(t, updated.UpdatedAt.After(saved.UpdatedAt) || updated.UpdatedAt.Equal(saved.UpdatedAt))
}

func TestListNewestFirst(t *testing.T) {
	m, d, _ := newManager(t)

	first, err := m.Save("first", "")
	require.NoError(t, err)
	d.Open(desktop.AppNotepad, "a", "", desktop.Bounds{})
	second, err := m.Save("second", "")
	require.NoError(t, err)

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 1, list[0].WindowCount)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, 0, list[1].WindowCount)
}

func TestListSkipsCorruptEntries(t *testing.T) {
	m, _, store := newManager(t)

	_, err := m.Save("good", "")
	require.NoError(t, err)
	require.NoError(t, store.Save(storage.KeySessions+"/sess_bad", []byte("{nope")))

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "good", list[0].Name)
}

func TestDelete(t *testing.T) {
	m, _, _ := newManager(t)

	saved, err := m.Save("doomed", "")
	require.NoError(t, err)

	require.NoError(t, m.Delete(saved.ID))
	_, err = m.Load(saved.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, m.Delete(saved.ID), storage.ErrNotFound)
}

func TestStatsCountsStoredSessions(t *testing.T) {
	m, _, _ := newManager(t)

	_, err := m.Save("one", "")
	require.NoError(t, err)
	_, err = m.Save("two", "")
	require.NoError(t, err)

	assert.Equal(t, 2, m.Stats().TotalSessions)
}
