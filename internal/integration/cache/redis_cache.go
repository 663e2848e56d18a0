// Package cache implements the local key-value cache mirroring dashboard summaries.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

// redisCache implements adapter.KeyValueCache over Redis.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. A ttl of zero keeps values
// until they are removed.
func NewRedisCache(client *redis.Client, ttl time.Duration) adapter.KeyValueCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached value and whether it was found.
func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores a value under key.
func (c *redisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Remove deletes the value stored under key.
func (c *redisCache) Remove(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
