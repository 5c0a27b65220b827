package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	_ "gocloud.dev/docstore/memdocstore"
	_ "gocloud.dev/docstore/mongodocstore"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
)

// OpenStore opens the project store selected by cfg.Backend. The returned
// closer releases the backend's connections and is never nil.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (repository.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case repository.BackendFile, "":
		return repository.NewFileStore(cfg.DataFile), noop, nil

	case repository.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return repository.NewRedisStore(client), client.Close, nil

	case repository.BackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.DSN,
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		})
		if err != nil {
			return nil, noop, err
		}
		store := repository.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() error { pool.Close(); return nil }, nil

	case repository.BackendBolt:
		store, err := repository.OpenBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil

	case repository.BackendDocstore:
		store, err := repository.OpenDocStore(ctx, cfg.DocstoreURL)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
