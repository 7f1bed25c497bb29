package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the status-cache interface. It is a fast path over the document
// store for skipping already-done files on redelivery; a cache miss or error
// only means falling back to the transactional claim. Implementations must be
// safe for concurrent use.
type Cache interface {
	GetFileStatus(ctx context.Context, fileID string) (string, bool, error)
	SetFileStatus(ctx context.Context, fileID, status string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// RedisCache implements the Cache interface using go-redis/v9.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache from a Redis URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) GetFileStatus(ctx context.Context, fileID string) (string, bool, error) {
	val, err := c.client.Get(ctx, FileStatusKey(fileID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) SetFileStatus(ctx context.Context, fileID, status string, ttl time.Duration) error {
	return c.client.Set(ctx, FileStatusKey(fileID), status, ttl).Err()
}

// Noop is used when no Redis URL is configured. Every lookup misses.
type Noop struct{}

func (Noop) GetFileStatus(ctx context.Context, fileID string) (string, bool, error) {
	return "", false, nil
}

func (Noop) SetFileStatus(ctx context.Context, fileID, status string, ttl time.Duration) error {
	return nil
}

func (Noop) Ping(ctx context.Context) error { return nil }
