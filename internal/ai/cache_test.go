package ai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := NewResponseCache(10)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewResponseCache(3)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")
	c.Set("d", "4") // overflow: "a" is the LRU entry

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	for _, k := range []string{"b", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, "%s should survive", k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCacheGetProtectsFromEviction(t *testing.T) {
	c := NewResponseCache(3)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	_, ok := c.Get("a") // promote
	require.True(t, ok)

	c.Set("d", "4") // now "b" is the LRU entry

	_, ok = c.Get("a")
	assert.True(t, ok, "promoted entry should survive")
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCacheSetOverwrites(t *testing.T) {
	c := NewResponseCache(3)

	c.Set("k", "old")
	c.Set("k", "new")

	got, _ := c.Get("k")
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheMaxSizePlusOne(t *testing.T) {
	c := NewResponseCache(DefaultCacheSize)

	for i := 0; i <= DefaultCacheSize; i++ {
		c.Set(fmt.Sprintf("key-%d", i), "v")
	}

	assert.Equal(t, DefaultCacheSize, c.Len())
	_, ok := c.Get("key-0")
	assert.False(t, ok, "exactly the least-recently-inserted entry is evicted")
	_, ok = c.Get("key-1")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	c := NewResponseCache(3)
	c.Set("a", "1")
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCacheKeyDeterministic(t *testing.T) {
	c := NewResponseCache(3)

	k1, err := c.Key(OpRewrite, map[string]string{"text": "x", "style": "formal"})
	require.NoError(t, err)
	k2, err := c.Key(OpRewrite, map[string]string{"style": "formal", "text": "x"})
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "key must not depend on map construction order")

	k3, err := c.Key(OpSummarize, map[string]string{"text": "x", "style": "formal"})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestCacheHitRate(t *testing.T) {
	c := NewResponseCache(3)
	c.Set("a", "1")

	c.Get("a")
	c.Get("a")
	c.Get("nope")

	hits, misses := c.HitRate()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}
