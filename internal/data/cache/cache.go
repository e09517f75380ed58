package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/penwyp/go-eld-log/internal/util"
)

// DefaultSize is the number of rendered logs kept when no size is configured.
const DefaultSize = 256

// RenderCache keeps rendered results keyed by the fingerprint of their input.
// A size of zero or less disables caching.
type RenderCache[V any] struct {
	entries *lru.Cache[string, V]
	hits    int64
	misses  int64
}

// New creates a RenderCache holding at most size entries.
func New[V any](size int) (*RenderCache[V], error) {
	c := &RenderCache[V]{}
	if size <= 0 {
		return c, nil
	}

	entries, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}
	c.entries = entries
	return c, nil
}

// Key fingerprints the given inputs into a cache key.
func Key(inputs ...interface{}) (string, error) {
	return util.FingerprintValue(inputs)
}

// Get returns the cached value for key.
func (c *RenderCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.entries == nil {
		return zero, false
	}
	v, ok := c.entries.Get(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return v, ok
}

// Add stores value under key, evicting the least recently used entry when full.
func (c *RenderCache[V]) Add(key string, value V) {
	if c == nil || c.entries == nil {
		return
	}
	if c.entries.Add(key, value) {
		util.LogDebug("Render cache evicted an entry", util.F("size", c.entries.Len()))
	}
}

// Len returns the number of cached entries.
func (c *RenderCache[V]) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Purge drops every cached entry.
func (c *RenderCache[V]) Purge() {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Purge()
}

// Stats returns hit and miss counts and the hit rate in percent.
func (c *RenderCache[V]) Stats() (hits, misses int64, hitRate float64) {
	if c == nil {
		return 0, 0, 0
	}
	hits = atomic.LoadInt64(&c.hits)
	misses = atomic.LoadInt64(&c.misses)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// LogStats writes the current statistics to the debug log.
func (c *RenderCache[V]) LogStats() {
	hits, misses, hitRate := c.Stats()
	util.LogDebugf("Render cache stats: entries %d, hits %d, misses %d, hit rate %.1f%%",
		c.Len(), hits, misses, hitRate)
}
