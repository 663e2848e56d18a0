package cache

import (
	"context"
	"sync"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

// MemoryCache is an in-process adapter.KeyValueCache used when Redis is not configured.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ adapter.KeyValueCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]string)}
}

// Get returns the cached value and whether it was found.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok, nil
}

// Set stores a value under key.
func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Remove deletes the value stored under key.
func (c *MemoryCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
