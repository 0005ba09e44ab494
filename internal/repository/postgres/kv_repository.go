package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.KVStore = (*KVRepository)(nil)

type KVRepository struct {
	db *pgxpool.Pool
}

func NewKVRepository(db *pgxpool.Pool) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "repository.Get"
	var value []byte
	err := r.db.QueryRow(ctx, repository.GetValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	const op = "repository.Set"
	_, err := r.db.Exec(ctx, repository.UpsertValueQuery, key, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, keys ...string) error {
	const op = "repository.Delete"
	if len(keys) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, repository.DeleteValuesQuery, keys)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close is a no-op: the pool is owned by the app and closed on shutdown.
func (r *KVRepository) Close() error { return nil }
