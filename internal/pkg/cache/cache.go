// Package cache provides a small TTL cache with a capacity bound. Each
// component that needs caching owns its own instance.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Options configures a Cache. Zero TTL means entries never expire by age;
// zero Capacity means unbounded.
type Options struct {
	TTL      time.Duration
	Capacity int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is an LRU bounded by Options.Capacity whose entries expire
// Options.TTL after insertion.
type Cache[K comparable, V any] struct {
	opts Options
	lru  *expirable.LRU[K, entry[V]]
}

func New[K comparable, V any](opts Options) *Cache[K, V] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache[K, V]{
		opts: opts,
		lru:  expirable.NewLRU[K, entry[V]](opts.Capacity, nil, opts.TTL),
	}
}

// Get returns the value for key if present and younger than the TTL.
// Expired entries are dropped on access.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	// The LRU sweeps on wall time; Now decides freshness so an injected
	// clock is honored.
	if c.opts.TTL > 0 && c.opts.Now().Sub(e.insertedAt) >= c.opts.TTL {
		c.lru.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, entry[V]{value: value, insertedAt: c.opts.Now()})
}

func (c *Cache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

// Len counts stored entries.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
