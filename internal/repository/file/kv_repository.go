package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/repository"
)

var _ repository.KVStore = (*KVRepository)(nil)

// KVRepository stores all keys in one JSON document on local disk, the way a
// device keeps its app storage. Every write replaces the file atomically.
type KVRepository struct {
	mu   sync.Mutex
	path string
}

func NewKVRepository(path string) (*KVRepository, error) {
	const op = "file.NewKVRepository"
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &KVRepository{path: path}, nil
}

func (r *KVRepository) Get(_ context.Context, key string) ([]byte, error) {
	const op = "file.Get"
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v, ok := values[key]
	if !ok {
		return nil, custom_err.ErrNotFound
	}
	return v, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetMany(ctx, map[string][]byte{key: value})
}

func (r *KVRepository) SetMany(_ context.Context, entries map[string][]byte) error {
	const op = "file.SetMany"
	if len(entries) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.loadForWrite()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for k, v := range entries {
		values[k] = v
	}
	if err := r.store(values); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) Delete(_ context.Context, keys ...string) error {
	const op = "file.Delete"
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.loadForWrite()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, k := range keys {
		delete(values, k)
	}
	if err := r.store(values); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) Close() error { return nil }

func (r *KVRepository) load() (map[string][]byte, error) {
	values := make(map[string][]byte)
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode storage file: %w: %v", custom_err.ErrCorruptData, err)
	}
	return values, nil
}

// loadForWrite replaces a corrupt document instead of refusing every write.
func (r *KVRepository) loadForWrite() (map[string][]byte, error) {
	values, err := r.load()
	if errors.Is(err, custom_err.ErrCorruptData) {
		return make(map[string][]byte), nil
	}
	return values, err
}

func (r *KVRepository) store(values map[string][]byte) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
