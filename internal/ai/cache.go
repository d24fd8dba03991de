package ai

import (
	"container/list"
	"sync"

	"github.com/retrodesk/reanimated/internal/shared/hash"
)

// DefaultCacheSize bounds the response cache when no size is configured.
const DefaultCacheSize = 100

// ResponseCache is an LRU cache of serialized operation results. Values are
// JSON strings, which constrains cacheable results to JSON-safe shapes --
// exactly what the four operations return. Get promotes, Set evicts the
// least-recently-used entry on overflow.
type ResponseCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	recency *list.List // front = most recently used
	hasher  *hash.Hasher

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key   string
	value string
}

// NewResponseCache creates a cache holding at most maxSize entries.
func NewResponseCache(maxSize int) *ResponseCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &ResponseCache{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		recency: list.New(),
		hasher:  hash.New(),
	}
}

// Key builds the deterministic cache key for an (operation, input) pair.
func (c *ResponseCache) Key(operation string, input any) (string, error) {
	return c.hasher.Key(operation, input)
}

// Get returns the cached value and promotes the entry.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return "", false
	}
	c.recency.MoveToFront(el)
	c.hits++
	return el.Value.(*cacheEntry).value, true
}

// Set inserts or overwrites a value, evicting the least-recently-used entry
// when the cache would exceed its size.
func (c *ResponseCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).value = value
		c.recency.MoveToFront(el)
		return
	}

	c.entries[key] = c.recency.PushFront(&cacheEntry{key: key, value: value})
	if c.recency.Len() > c.maxSize {
		oldest := c.recency.Back()
		c.recency.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of live entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Clear empties the cache.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.recency.Init()
}

// HitRate reports cache effectiveness since construction.
func (c *ResponseCache) HitRate() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
