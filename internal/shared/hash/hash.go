// Package hash provides deterministic hashing for cache keys.
//
// AI responses are cached by (operation, input) pairs. Structured inputs are
// serialized through encoding/json, which writes map keys in sorted order, so
// two inputs that are equal as values always hash to the same key regardless
// of construction order.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hasher computes hex-encoded SHA-256 digests.
type Hasher struct{}

// New returns a Hasher.
func New() *Hasher {
	return &Hasher{}
}

// Sum computes the digest of raw bytes.
func (h *Hasher) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SumString computes the digest of a string.
func (h *Hasher) SumString(s string) string {
	return h.Sum([]byte(s))
}

// SumJSON computes the digest of a JSON-serializable value. The digest is
// deterministic: equal values produce equal digests.
func (h *Hasher) SumJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for hashing: %w", err)
	}
	return h.Sum(data), nil
}

// Key builds a cache key from an operation name and its input. The operation
// name is kept outside the digest so keys stay greppable in logs.
func (h *Hasher) Key(operation string, input any) (string, error) {
	digest, err := h.SumJSON(input)
	if err != nil {
		return "", err
	}
	return operation + ":" + digest, nil
}
