package postgres

import (
	"context"
	"fmt"

	"wallet_client/internal/repository"

	"github.com/jackc/pgx/v5"
)

// SetMany writes all entries in one transaction: COPY into a temp table,
// then a single upsert into session_kv.
func (r *KVRepository) SetMany(ctx context.Context, entries map[string][]byte) error {
	const op = "repository.SetMany"
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, repository.CreateBulkTempTableQuery); err != nil {
		return fmt.Errorf("%s: create temp table: %w", op, err)
	}

	rows := make([][]any, 0, len(entries))
	for key, value := range entries {
		rows = append(rows, []any{key, value})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"session_kv_tmp"},
		[]string{"key", "value"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("%s: copy into temp table: %w", op, err)
	}

	if _, err := tx.Exec(ctx, repository.UpsertFromBulkTempTableQuery); err != nil {
		return fmt.Errorf("%s: upsert from temp table: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
