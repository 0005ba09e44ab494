package redis

import (
	"context"
	"errors"
	"fmt"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

var _ repository.KVStore = (*KVRepository)(nil)

// KVRepository keeps session keys in redis under a common prefix. Keys never
// expire; token expiry is checked from the token itself.
type KVRepository struct {
	client *goredis.Client
	prefix string
}

func NewKVRepository(client *goredis.Client, prefix string) *KVRepository {
	return &KVRepository{client: client, prefix: prefix}
}

func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (r *KVRepository) key(k string) string { return r.prefix + k }

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "redis.Get"
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	const op = "redis.Set"
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) SetMany(ctx context.Context, entries map[string][]byte) error {
	const op = "redis.SetMany"
	if len(entries) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, keys ...string) error {
	const op = "redis.Delete"
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) Close() error {
	return r.client.Close()
}
