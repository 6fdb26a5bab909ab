package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

const menuKey = "menu:list"

// RedisMenuCache holds the serialized public menu listing. Inventory
// edits invalidate it so customers never browse a stale menu longer
// than one request.
type RedisMenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMenuCache(rdb *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMenuCache) Get(ctx context.Context) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisMenuCache) Set(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, menuKey, payload, c.ttl).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, menuKey).Err()
}

var _ usecase.MenuCache = (*RedisMenuCache)(nil)
