package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	projectapp "github.com/timetracker/backend/internal/application/project"
)

const defaultCleanupInterval = 30 * time.Second

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func (e memoryEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local cache with per-entry expiry.
// Values are stored JSON encoded so callers get copies, the same as with Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stopCh  chan struct{}
	stopped int32
}

// NewMemoryCache creates a cache and starts its background cleanup
func NewMemoryCache() *MemoryCache {
	return newMemoryCache(defaultCleanupInterval)
}

func newMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		stopCh:  make(chan struct{}),
	}
	go c.cleanupExpired(cleanupInterval)
	return c
}

// Get decodes the cached value into dest. Missing or expired keys return false.
func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.isExpired(time.Now()) {
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key. A non-positive ttl keeps the entry until Close.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %q: %w", key, err)
	}
	entry := memoryEntry{raw: raw}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *MemoryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.isExpired(now) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

var _ projectapp.Cache = (*MemoryCache)(nil)
