// Package memory provides a process-local cache used when Redis is not
// configured.
package memory

import (
	"context"
	"sync"
	"time"

	"library-backend/application/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a TTL map guarded by a mutex. Expired entries are dropped
// lazily on read and swept periodically.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	done    chan struct{}
}

// NewCache creates an in-memory cache with a background sweeper.
func NewCache() *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get implements ports.Cache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, ports.ErrCacheMiss
	}
	return e.value, nil
}

// Set implements ports.Cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete implements ports.Cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (c *Cache) Close() {
	close(c.done)
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
