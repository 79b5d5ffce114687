package window

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/javiermolinar/almanac/internal/metrics"
)

// DefaultCacheCapacity is the number of units whose data is kept.
const DefaultCacheCapacity = 20

// Cache is a bounded per-unit data store with least-recently-used eviction.
// A missing key is a normal miss, never an error.
type Cache[T any] struct {
	lru  *lru.Cache[int, T]
	sink metrics.Sink
}

// NewCache creates a cache holding at most capacity units.
func NewCache[T any](capacity int, sink metrics.Sink) (*Cache[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be at least 1, got %d", capacity)
	}
	l, err := lru.New[int, T](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating unit cache: %w", err)
	}
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Cache[T]{lru: l, sink: sink}, nil
}

// Get returns the data for index and refreshes its recency.
func (c *Cache[T]) Get(index int) (T, bool) {
	v, ok := c.lru.Get(index)
	if ok {
		c.sink.RecordCacheHit()
	} else {
		c.sink.RecordCacheMiss()
	}
	return v, ok
}

// Set stores data for index, evicting the least recently used unit when full.
func (c *Cache[T]) Set(index int, data T) {
	c.lru.Add(index, data)
}

// Len returns the number of cached units.
func (c *Cache[T]) Len() int { return c.lru.Len() }

// Keys returns cached indices from least to most recently used.
func (c *Cache[T]) Keys() []int { return c.lru.Keys() }

// Purge drops everything.
func (c *Cache[T]) Purge() { c.lru.Purge() }
