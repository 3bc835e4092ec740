package gateway

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LewyHua/RiceTrace-sub000/config"
	"github.com/LewyHua/RiceTrace-sub000/internal/platform/logger"
)

// Cache accelerates ledger reads. Implementations must degrade silently: a
// miss or a backend outage falls back to evaluating against the ledger,
// never to a failed request.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, keys ...string)
}

func batchCacheKey(batchID string) string   { return "rt:batch:" + batchID }
func historyCacheKey(batchID string) string { return "rt:history:" + batchID }
func statusCacheKey(batchID string) string  { return "rt:status:" + batchID }
func productCacheKey(productID string) string {
	return "rt:product:" + productID
}

// redisCache is the production Cache over a redis instance.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache builds the read cache, or returns nil (cache disabled) when
// the config switches it off.
func NewRedisCache(cfg *config.CacheConfig, log *logger.Logger) Cache {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache{client: client, ttl: cfg.TTL(), log: log}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache get failed", "key", key, "err", err)
		return nil, false
	}
	return data, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "keys", keys, "err", err)
	}
}
