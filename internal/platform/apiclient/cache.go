package apiclient

import (
	"context"
	"sync"
	"time"
)

// cacheEntry holds a cached envelope and the time it was stored.
type cacheEntry struct {
	env      *Envelope
	storedAt time.Time
}

// ResponseCache is a thread-safe in-memory cache for GET responses, keyed by
// request signature, with lazy expiration. An entry is valid strictly while
// its age is below the TTL: an entry exactly TTL old is already a miss.
type ResponseCache struct {
	entries map[string]*cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
	now     func() time.Time
}

// NewResponseCache creates a cache with the given TTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a cached envelope. Expired entries are deleted on access and
// reported as misses.
func (c *ResponseCache) Get(key string) (*Envelope, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.env, true
}

// Set stores an envelope, unconditionally overwriting any previous entry.
func (c *ResponseCache) Set(key string, env *Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{env: env, storedAt: c.now()}
}

// Clear removes all entries. Called on auth teardown: cached data is
// tenant-scoped and must not leak across tenant switches.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the number of physically retained entries, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartCleanup runs a background goroutine that periodically removes expired
// entries. It stops when the context is cancelled.
func (c *ResponseCache) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.mu.Lock()
				now := c.now()
				for k, v := range c.entries {
					if now.Sub(v.storedAt) >= c.ttl {
						delete(c.entries, k)
					}
				}
				c.mu.Unlock()
			}
		}
	}()
}
