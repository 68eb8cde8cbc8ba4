/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"sync"
	"time"
)

// Key identifies a memoized result.
type Key struct {
	Operation string
	Language  string
}

func (k Key) String() string {
	return k.Operation + "@" + k.Language
}

type entry struct {
	value    any
	expireAt time.Time
}

// Cache is a process-wide TTL memo keyed by (operation, language).
//
// Computations are not de-duplicated: concurrent misses on one key each run
// their compute function and the last store wins. A value computed while
// InvalidateAll runs may still be stored after it returns.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the live value stored under key, or runs fn, stores
// its result for ttl and returns it. A ttl <= 0 disables storing.
func (c *Cache) GetOrCompute(key Key, ttl time.Duration, fn func() any) any {
	if v, ok := c.get(key); ok {
		return v
	}

	v := fn()
	c.set(key, v, ttl)
	return v
}

func (c *Cache) get(key Key) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Before(e.expireAt) {
		return e.value, true
	}

	// Expired; reclaim unless a fresh value replaced it meanwhile.
	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expireAt) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil, false
}

func (c *Cache) set(key Key, v any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{value: v, expireAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[Key]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included until
// they are next accessed.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fetch is a typed GetOrCompute. A stored value of another type is treated
// as a miss and recomputed.
func Fetch[V any](c *Cache, key Key, ttl time.Duration, fn func() V) V {
	return FetchIf(c, key, ttl, func() (V, bool) {
		return fn(), true
	})
}

// FetchIf is Fetch for computations that may decline storing: the result of
// fn is returned either way but kept only when fn reports true.
func FetchIf[V any](c *Cache, key Key, ttl time.Duration, fn func() (V, bool)) V {
	if c == nil {
		v, _ := fn()
		return v
	}
	if v, ok := c.get(key); ok {
		if typed, ok := v.(V); ok {
			return typed
		}
	}

	v, keep := fn()
	if keep {
		c.set(key, v, ttl)
	}
	return v
}
