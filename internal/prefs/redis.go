package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps a namespace as a Redis hash.
type RedisStore struct {
	rdb       redis.UniversalClient
	namespace string
}

func NewRedisStore(rdb redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{rdb: rdb, namespace: namespace}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.HGet(ctx, s.namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis hget %s/%s: %w", s.namespace, key, err)
	}
	return v, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := s.rdb.HSet(ctx, s.namespace, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s/%s: %w", s.namespace, key, err)
	}
	return nil
}
