// Package cache implements read-through caching of summaries in Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"iwms-dashboard/internal/common/database"
	"iwms-dashboard/internal/common/logger"
)

// Cache is a read-through JSON cache. A nil *Cache, a nil client or a
// non-positive TTL disables caching.
type Cache struct {
	client *database.RedisClient
	prefix string
	logger logger.Logger
}

func New(client *database.RedisClient, prefix string, log logger.Logger) *Cache {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Cache{client: client, prefix: prefix, logger: log}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// GetOrLoad returns the cached value at key or calls load and stores its
// result for ttl. Cache failures are logged and never fail the call.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if !c.enabled() || ttl <= 0 {
		return load(ctx)
	}

	fullKey := c.prefix + key
	var cached T
	err := c.client.GetJSON(ctx, fullKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, database.ErrCacheMiss) {
		c.logger.Warn("cache read failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.client.SetJSON(ctx, fullKey, v, ttl); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": fullKey, "error": err.Error()})
	}
	return v, nil
}
