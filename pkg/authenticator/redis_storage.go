package authenticator

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage on top of a Redis connection, holding each
// slot in a single string key. Useful when the same vault should be reachable
// from several machines.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage wraps an established Redis client (see pkg/redis.Connect).
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores value under key without expiration; the vault document must
// outlive any session.
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
