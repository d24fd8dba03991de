package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"file":   fs,
		"memory": NewMemStore(),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			payload := []byte(`{"root":{"name":"/"},"note":"héllo wörld 日本語"}`)
			require.NoError(t, s.Save(KeyVFS, payload))

			got, err := s.Load(KeyVFS)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestLoadMissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load("never-written")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("k", []byte("one")))
			require.NoError(t, s.Save("k", []byte("two")))

			got, err := s.Load("k")
			require.NoError(t, err)
			assert.Equal(t, []byte("two"), got)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("k", []byte("v")))
			require.NoError(t, s.Delete("k"))

			_, err := s.Load("k")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete("k"), "double delete should be a no-op")
		})
	}
}

func TestKeysPrefix(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save("desktop-sessions/a", []byte("1")))
			require.NoError(t, s.Save("desktop-sessions/b", []byte("2")))
			require.NoError(t, s.Save("vfs-data", []byte("3")))

			keys, err := s.Keys("desktop-sessions/")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"desktop-sessions/a", "desktop-sessions/b"}, keys)
		})
	}
}

func TestMemStoreFailSaves(t *testing.T) {
	s := NewMemStore()
	s.FailSaves = errors.New("disk full")

	assert.Error(t, s.Save("k", []byte("v")))
	_, err := s.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)
}
