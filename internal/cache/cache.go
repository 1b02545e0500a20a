// Package cache provides an in-memory TTL cache for backend responses,
// keyed by method name plus serialized call parameters.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DefaultCapacity bounds the number of live entries. When the cap is
// exceeded the oldest-inserted entry is dropped.
const DefaultCapacity = 100

// DefaultTTL applies to methods without an explicit TTL override.
const DefaultTTL = 5 * time.Minute

// Stats reports cache effectiveness counters.
type Stats struct {
	Entries   int `json:"entries"`
	Hits      int `json:"hits"`
	Misses    int `json:"misses"`
	Evictions int `json:"evictions"`
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-protected TTL cache with insertion-order eviction.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttls     map[string]time.Duration // per-method TTL overrides
	entries  map[string]entry
	order    []string // insertion order, oldest first
	now      func() time.Time
	stats    Stats
}

// New creates a cache with the given capacity. A capacity of 0 or less uses
// DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ttls:     make(map[string]time.Duration),
		entries:  make(map[string]entry),
		now:      time.Now,
	}
}

// SetTTL sets the TTL for a specific method name.
func (c *Cache) SetTTL(method string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[method] = ttl
}

// SetClock overrides the time source (tests).
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Key derives the cache key for a method call from the method name and its
// serialized parameters. Method name and params are delimited with a null
// byte to prevent collisions.
func Key(method string, params any) (string, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshaling cache params: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(method + "\x00"))
	h.Write(paramsJSON)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached value for a method call, if present and unexpired.
func (c *Cache) Get(method string, params any) (any, bool) {
	key, err := Key(method, params)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.value, true
}

// Put stores a method call result. The entry expires after the method's TTL
// (DefaultTTL when no override is set). Inserting past capacity evicts the
// oldest-inserted live entry.
func (c *Cache) Put(method string, params any, value any) error {
	key, err := Key(method, params)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl, ok := c.ttls[method]
	if !ok {
		ttl = DefaultTTL
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}

	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
	return nil
}

// evictOldest drops the oldest-inserted entry that is still live.
// Caller must hold c.mu.
func (c *Cache) evictOldest() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			c.stats.Evictions++
			return
		}
		// Key was already expired away; keep scanning.
	}
}

// Clear drops all entries and resets counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = nil
	c.stats = Stats{}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}
