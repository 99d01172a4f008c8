// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package cache provides the bounded in-memory LRU used for short-lived
// values such as signed project image URLs.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/metrics"
)

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

type lruEntry[V any] struct {
	key        string
	value      V
	prev, next *lruEntry[V]
	expiresAt  time.Time
}

// LRU is a thread-safe least recently used cache with a fixed TTL measured
// from insertion. Expired entries are dropped lazily on read and in bulk by
// CleanupExpired.
//
// Get, Set and Remove are O(1): a map indexes nodes of a doubly-linked list
// whose head is the most recently used entry.
type LRU[V any] struct {
	mu sync.Mutex

	name     string
	capacity int
	ttl      time.Duration
	now      Clock

	items map[string]*lruEntry[V]
	head  *lruEntry[V]
	tail  *lruEntry[V]

	hits      int64
	misses    int64
	evictions int64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// Option configures an LRU.
type Option[V any] func(*LRU[V])

// WithClock replaces time.Now.
func WithClock[V any](now Clock) Option[V] {
	return func(c *LRU[V]) { c.now = now }
}

// NewLRU creates a cache. name labels the cache in metrics.
func NewLRU[V any](name string, capacity int, ttl time.Duration, opts ...Option[V]) *LRU[V] {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := &LRU[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry[V], capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key if present and not expired. A hit becomes the
// most recently used entry.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		metrics.RecordCacheLookup(c.name, false)
		var zero V
		return zero, false
	}

	if !c.now().Before(entry.expiresAt) {
		c.removeEntry(entry)
		c.evict("expired")
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
		c.misses++
		metrics.RecordCacheLookup(c.name, false)
		var zero V
		return zero, false
	}

	c.moveToFront(entry)
	c.hits++
	metrics.RecordCacheLookup(c.name, true)
	return entry.value, true
}

// Set inserts or replaces key. The TTL restarts from now. When over capacity
// the least recently used entry is evicted.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		if oldest == c.head {
			break
		}
		c.removeEntry(oldest)
		c.evict("capacity")
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if ok {
		c.removeEntry(entry)
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
	}
	return ok
}

// Len returns the number of stored entries, expired ones included until they
// are swept.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*lruEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if !now.Before(entry.expiresAt) {
			c.removeEntry(entry)
			c.evict("expired")
			removed++
		}
		entry = prev
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
	return removed
}

// Stats returns a snapshot of the counters.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Name returns the metrics label of the cache.
func (c *LRU[V]) Name() string { return c.name }

// Internal methods, called with mu held.

func (c *LRU[V]) evict(reason string) {
	c.evictions++
	metrics.CacheEvictions.WithLabelValues(c.name, reason).Inc()
}

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
