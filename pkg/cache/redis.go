package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/a11ykit/a11ydocs/internal/errors"
)

// pageKeyPrefix is the Redis key prefix for cached pages.
const pageKeyPrefix = "page:"

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.New("E400").Wrap(err).WithDetailf("Redis at %s did not answer a ping.", addr)
	}

	slog.Info("redis connected", "addr", addr)
	return client, nil
}

// RedisCache is a PageCache shared by every server instance.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a page cache backed by client. A zero ttl uses
// DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "cache"),
	}
}

// Get retrieves cached HTML for a page path.
func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		rc.logger.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	rc.logger.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page path with the configured TTL.
func (rc *RedisCache) Set(ctx context.Context, key string, html []byte) {
	if err := rc.client.Set(ctx, pageKeyPrefix+key, html, rc.ttl).Err(); err != nil {
		rc.logger.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single page.
func (rc *RedisCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		rc.logger.Warn("page cache invalidate error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached page by scanning for the prefix.
func (rc *RedisCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			rc.logger.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				rc.logger.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		rc.logger.Info("page cache cleared", "deleted", deleted)
	}
}
