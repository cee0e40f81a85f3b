// Package secrets resolves and stores per-user, per-provider API secrets
// through a layered trust hierarchy: an ephemeral in-process cache, the
// OS-native keyring, and an encrypted-at-rest fallback record.
package secrets

import (
	"sync"
	"time"

	"focusd/internal/common"
)

type cacheEntry struct {
	secret   string
	cachedAt time.Time
}

// MasterCache holds unlocked master secrets for a short TTL so the user is
// not prompted on every operation. Process-local only, nothing persists.
// Entries expire lazily at read time; there is no background eviction.
type MasterCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewMasterCache() *MasterCache {
	return &MasterCache{
		ttl:     common.MasterCacheTTL,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Put caches secret under label, restarting its TTL.
func (c *MasterCache) Put(label, secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[label] = cacheEntry{secret: secret, cachedAt: c.now()}
}

// Get returns the cached secret if it is still within TTL. An expired entry
// is dropped and reported as absent.
func (c *MasterCache) Get(label string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[label]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.cachedAt) >= c.ttl {
		delete(c.entries, label)
		return "", false
	}
	return e.secret, true
}

// Clear removes the entry for label, if any.
func (c *MasterCache) Clear(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, label)
}
