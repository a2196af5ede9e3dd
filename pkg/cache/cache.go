// Package cache stores rendered docs pages. A page's initial render does
// not depend on the visitor, so one rendered copy serves every request
// until the content changes.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a rendered page stays cached.
const DefaultTTL = 10 * time.Minute

// PageCache stores rendered page HTML keyed by page path. Errors are logged
// by implementations, never returned: a cache failure only costs a render.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
	Invalidate(ctx context.Context, key string)
	InvalidateAll(ctx context.Context)
}

type memoryEntry struct {
	html    []byte
	expires time.Time
}

// MemoryCache is an in-process PageCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-memory cache. A zero ttl uses DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached HTML for key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.html, true
}

// Set stores html for key.
func (c *MemoryCache) Set(_ context.Context, key string, html []byte) {
	stored := append([]byte(nil), html...)
	c.mu.Lock()
	c.entries[key] = memoryEntry{html: stored, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes key.
func (c *MemoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll removes every entry.
func (c *MemoryCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Nop is a PageCache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte)        {}
func (Nop) Invalidate(context.Context, string)         {}
func (Nop) InvalidateAll(context.Context)              {}
