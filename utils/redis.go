package utils

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// ErrCacheDisabled is returned when Redis was never initialized; callers fall
// through to the store.
var ErrCacheDisabled = errors.New("redis not initialized")

// InitRedis connects the process-wide Redis client
func InitRedis(addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	rdb = client
	return nil
}

// CacheSet stores a value with a TTL
func CacheSet(key string, value []byte, ttl time.Duration) error {
	if rdb == nil {
		return ErrCacheDisabled
	}
	return rdb.Set(context.Background(), key, value, ttl).Err()
}

// CacheGet fetches a cached value; any error (miss, outage, disabled) means
// the caller should hit the store instead
func CacheGet(key string) ([]byte, error) {
	if rdb == nil {
		return nil, ErrCacheDisabled
	}
	return rdb.Get(context.Background(), key).Bytes()
}

// CacheDelete drops a cached key
func CacheDelete(key string) error {
	if rdb == nil {
		return ErrCacheDisabled
	}
	return rdb.Del(context.Background(), key).Err()
}
