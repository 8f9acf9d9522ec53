package tokenstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/genielabs/genie-admin/config"
)

// Force compiler to validate that RedisStorage implements the Storage interface.
var _ Storage = &RedisStorage{}

// RedisStorage shares a session between several admin client processes, e.g. a
// CLI and a long running automation using the same admin identity.
type RedisStorage struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisStorage(client redis.UniversalClient, keyPrefix string) *RedisStorage {
	return &RedisStorage{client: client, keyPrefix: keyPrefix}
}

// NewRedisStorageFromConfig creates a RedisStorage with a client initialized from the config file.
func NewRedisStorageFromConfig(cfg config.RedisConfig) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStorage(client, cfg.KeyPrefix)
}

func (r *RedisStorage) key(k string) string {
	return r.keyPrefix + k
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
