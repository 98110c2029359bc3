package kv

import (
	"context"

	"github.com/redis/go-redis/v9" // Redis client
)

// Redis is a Store backed by a Redis database. Keys persist without TTL;
// Redis is the durable medium here, not a cache.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(key string) (string, error) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (r *Redis) Set(key, value string) error {
	return r.client.Set(context.Background(), key, value, 0).Err()
}

func (r *Redis) Delete(key string) error {
	return r.client.Del(context.Background(), key).Err()
}

// Clear flushes the configured Redis database. The vault owns the whole
// database (selected by REDIS_DB), matching the full-store reset semantics.
func (r *Redis) Clear() error {
	return r.client.FlushDB(context.Background()).Err()
}
