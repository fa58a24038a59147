package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage over a Redis hash per scope. It serves
// local development and self-hosted runtimes where the platform key-value
// API is not reachable; scope semantics are identical to APIStorage.
type RedisStorage struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStorage creates a Storage over the given Redis client. keyPrefix
// namespaces the hashes (e.g. "kitdb:").
func NewRedisStorage(client *redis.Client, keyPrefix string) *RedisStorage {
	return &RedisStorage{client: client, keyPrefix: keyPrefix}
}

// FetchAll reads the whole scope hash.
func (s *RedisStorage) FetchAll(ctx context.Context, scopeName string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.keyPrefix+scopeName).Result()
	if err != nil {
		return nil, err
	}
	return values, nil
}

// PutAll writes the batch grouped by scope, one HSET per scope.
func (s *RedisStorage) PutAll(ctx context.Context, items []Item) error {
	byScope := map[string][]any{}
	for _, item := range items {
		byScope[item.ScopeName] = append(byScope[item.ScopeName], item.Key, item.Value)
	}
	pipe := s.client.Pipeline()
	for scopeName, pairs := range byScope {
		pipe.HSet(ctx, s.keyPrefix+scopeName, pairs...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
