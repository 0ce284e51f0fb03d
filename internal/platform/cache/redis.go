package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCountKeyFmt keys the per-user unread notification counter.
const UnreadCountKeyFmt = "notifications:unread:"

// Cache wraps a Redis client with graceful degradation: when the server is
// unreachable at startup the client stays nil and every operation becomes a
// no-op miss, so the application keeps serving from the database.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. A failed ping returns a degraded (but usable) cache
// alongside the error so the caller can log and continue.
func New(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return &Cache{}, err
	}
	return &Cache{client: client}, nil
}

// Disabled returns a cache that always misses, for tests and degraded runs.
func Disabled() *Cache {
	return &Cache{}
}

// GetInt reads an integer key; a miss or degraded cache reports ok=false.
func (c *Cache) GetInt(ctx context.Context, key string) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt stores an integer with a TTL.
func (c *Cache) SetInt(ctx context.Context, key string, value int, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key, strconv.Itoa(value), ttl)
}

// Invalidate removes keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// IsHealthy reports whether the connection answers pings.
func (c *Cache) IsHealthy() bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
