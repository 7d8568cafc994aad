// Package app wires configuration, storage and use cases together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/taskup/internal/config"
	boltInfra "github.com/fastygo/taskup/internal/infrastructure/bolt"
	pgInfra "github.com/fastygo/taskup/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/taskup/internal/infrastructure/redis"
	"github.com/fastygo/taskup/internal/services/lifecycle"
	"github.com/fastygo/taskup/repository"
	boltRepo "github.com/fastygo/taskup/repository/bolt"
	pgRepo "github.com/fastygo/taskup/repository/postgres"
	redisRepo "github.com/fastygo/taskup/repository/redis"
	authUC "github.com/fastygo/taskup/usecase/auth"
)

// OpenStore connects the KV backend selected by STORAGE_DRIVER and registers
// its shutdown with manager when one is given.
func OpenStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, logger *zap.Logger) (repository.KVStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	register := func(name string, fn lifecycle.ShutdownFunc) {
		if manager != nil {
			manager.Register(name, fn)
		}
	}

	switch cfg.Storage.Driver {
	case config.DriverBolt:
		db, err := boltInfra.Open(cfg.Storage.BoltPath, cfg.Storage.Bucket, logger)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		kv := boltRepo.NewKVRepository(db, cfg.Storage.Bucket)
		register("bolt", lifecycle.Closer(kv.Close))
		return kv, nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("redis connected", zap.String("prefix", cfg.Redis.KeyPrefix))
		register("redis", lifecycle.Closer(client.Close))
		return redisRepo.NewKVRepository(client, cfg.Redis.KeyPrefix), nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		register("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
		return pgRepo.NewKVRepository(pool), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// StoreOptionsFrom maps configuration onto StoreOptions.
func StoreOptionsFrom(cfg *config.Config, logger *zap.Logger) StoreOptions {
	return StoreOptions{
		Tokens: authUC.TokenOptions{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
			TTL:    cfg.JWT.TTL,
		},
		Location: cfg.Location(),
		Logger:   logger,
	}
}
