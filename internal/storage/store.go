// Package storage provides the persistence layer behind the virtual file
// system and the AI usage tracker. It plays the role browser local storage
// played for the original desktop: a handful of well-known keys, each holding
// one serialized blob, written best-effort after every mutation.
package storage

import "errors"

// Well-known storage keys.
const (
	KeyVFS      = "vfs-data"
	KeyAIUsage  = "ai-usage-stats"
	KeySessions = "desktop-sessions"
)

// ErrNotFound is returned by Load when no value exists for a key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a flat key→blob persistence interface. Implementations must be
// safe for concurrent use.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Save writes the blob under key, replacing any previous value.
	Save(key string, data []byte) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string) error
	// Keys lists all stored keys with the given prefix.
	Keys(prefix string) ([]string, error)
}
