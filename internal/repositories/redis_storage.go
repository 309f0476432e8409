package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
)

// DefaultRedisPrefix namespaces the client storage keys in Redis.
const DefaultRedisPrefix = "gw-bank-client:storage"

// RedisStorageRepository keeps the persisted client state in Redis.
type RedisStorageRepository struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStorageRepository creates a repository; an empty prefix means
// DefaultRedisPrefix. Trailing colons are dropped, key adds the separator.
func NewRedisStorageRepository(client redis.Cmdable, prefix string) *RedisStorageRepository {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStorageRepository{client: client, prefix: prefix}
}

func (r *RedisStorageRepository) key(k string) string {
	return fmt.Sprintf("%s:%s", r.prefix, k)
}

// Get returns the value stored under key and whether it exists.
func (r *RedisStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()

	logger.Log.Debugw("redis get",
		"key", r.key(key),
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key without expiration.
func (r *RedisStorageRepository) Set(ctx context.Context, key, value string) error {
	err := r.client.Set(ctx, r.key(key), value, 0).Err()

	logger.Log.Debugw("redis set",
		"key", r.key(key),
		"error", err,
	)

	return err
}

// Delete removes the given keys.
func (r *RedisStorageRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	err := r.client.Del(ctx, full...).Err()

	logger.Log.Debugw("redis delete",
		"keys", full,
		"error", err,
	)

	return err
}
