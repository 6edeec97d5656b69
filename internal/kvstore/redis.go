package kvstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps reminder state in Redis so restarts do not re-send.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	// No TTL: the reminder window check compares timestamps itself.
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
