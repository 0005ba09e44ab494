package memory

import (
	"context"
	"sync"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/repository"
)

var _ repository.KVStore = (*KVRepository)(nil)

// KVRepository keeps everything in process memory. Nothing survives a restart.
type KVRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKVRepository() *KVRepository {
	return &KVRepository{values: make(map[string][]byte)}
}

func (r *KVRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, custom_err.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

func (r *KVRepository) SetMany(_ context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range entries {
		r.values[k] = append([]byte(nil), v...)
	}
	return nil
}

func (r *KVRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func (r *KVRepository) Close() error { return nil }
