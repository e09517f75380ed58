package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCacheGetAdd(t *testing.T) {
	c, err := New[string](2)
	require.NoError(t, err)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Add("a", "first")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 50.0, rate, 1e-9)
}

func TestRenderCacheEviction(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	_, _ = c.Get("a")
	c.Add("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestRenderCacheDisabled(t *testing.T) {
	c, err := New[int](0)
	require.NoError(t, err)

	c.Add("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	var nilCache *RenderCache[int]
	_, ok = nilCache.Get("a")
	assert.False(t, ok)
	nilCache.Add("a", 1)
	hits, misses, _ := nilCache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestKey(t *testing.T) {
	a, err := Key(map[string]int{"x": 1, "y": 2}, "opts")
	require.NoError(t, err)
	b, err := Key(map[string]int{"y": 2, "x": 1}, "opts")
	require.NoError(t, err)
	c, err := Key(map[string]int{"x": 1, "y": 3}, "opts")
	require.NoError(t, err)

	assert.Equal(t, a, b, "map order does not change the key")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 8)
}
