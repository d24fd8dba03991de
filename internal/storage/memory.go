package storage

import (
	"sort"
	"strings"
	"sync"
)

// MemStore is a map-backed Store used by tests and by ephemeral mode, where
// the desktop intentionally forgets everything on restart.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSaves makes every Save return an error. Tests use it to verify
	// that persistence failures are swallowed without rolling back state.
	FailSaves error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Load returns a copy of the blob for key.
func (s *MemStore) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores a copy of the blob under key.
func (s *MemStore) Save(key string, data []byte) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[key] = stored
	return nil
}

// Delete removes the key.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys lists stored keys with the given prefix, sorted.
func (s *MemStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
