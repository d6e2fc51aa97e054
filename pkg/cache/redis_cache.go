package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache is a small string cache over Redis, used to remember inferred
// CSV column mappings between imports of the same source format.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// Config Redis connection settings
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisCache creates a cache instance
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "leadroll:cache"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close shuts down the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) key(key string) string {
	return c.prefix + ":" + key
}

// Get returns the cached value, or redis.Nil when the key is absent
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// Set stores a value with a TTL
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// IsMiss reports whether err means the key was not in the cache
func IsMiss(err error) bool {
	return err == redis.Nil
}
