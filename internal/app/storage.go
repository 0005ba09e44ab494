package app

import (
	"context"
	"fmt"
	"log/slog"

	"wallet_client/internal/config"
	"wallet_client/internal/db"
	"wallet_client/internal/repository/file"
	"wallet_client/internal/repository/memory"
	"wallet_client/internal/repository/postgres"
	redisrepo "wallet_client/internal/repository/redis"
)

// openStore connects the session storage backend chosen by STORAGE_DRIVER.
func (a *App) openStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		a.log.Warn("session storage is in memory, nothing survives a restart")
		a.store = memory.NewKVRepository()

	case config.StorageFile:
		store, err := file.NewKVRepository(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open session file: %w", err)
		}
		a.store = store

	case config.StorageRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.store = redisrepo.NewKVRepository(client, cfg.Redis.Prefix)

	case config.StoragePostgres:
		a.log.Info("running database migrations", slog.String("dir", cfg.Storage.MigrationsDir))
		if err := db.RunMigrations(cfg.DB.MigrationURL(), cfg.Storage.MigrationsDir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		pool, err := db.NewPool(ctx, cfg.DB.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.pool = pool
		a.store = postgres.NewKVRepository(pool)

	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	a.log.Info("session storage ready", slog.String("driver", cfg.Storage.Driver))
	return nil
}

func (a *App) closeStore() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Error("failed to close session storage", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.log.Info("closing database pool")
		a.pool.Close()
	}
}
