package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/internal/config"
)

// KVTable is the table backing the Postgres KV store.
const KVTable = "kv_entries"

// kvMaxConns bounds the pool. The store issues one statement per snapshot
// write and at most four loads run at once at startup.
const kvMaxConns = 8

// ErrSchemaMissing is returned when the KV table has not been migrated yet.
var ErrSchemaMissing = errors.New("postgres: " + KVTable + " table missing, run `taskup migrate`")

// ConnString returns cfg.URL, or builds one from the individual fields with
// credentials escaped.
func ConnString(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// PoolConfig parses cfg and sizes the pool for snapshot-sized KV traffic.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pgxCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pgxCfg.MaxConns = kvMaxConns
	if cfg.MaxOpenConns > 0 && cfg.MaxOpenConns < kvMaxConns {
		pgxCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	pgxCfg.MinConns = 0
	if cfg.MaxIdleConns > 0 {
		pgxCfg.MinConns = min(int32(cfg.MaxIdleConns), pgxCfg.MaxConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	return pgxCfg, nil
}

// NewPool connects, pings and checks that the KV table exists.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pgxCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, err
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(checkCtx); err != nil {
		pool.Close()
		return nil, err
	}

	var table *string
	if err := pool.QueryRow(checkCtx, `SELECT to_regclass($1)::text`, KVTable).Scan(&table); err != nil {
		pool.Close()
		return nil, fmt.Errorf("check %s: %w", KVTable, err)
	}
	if table == nil {
		pool.Close()
		return nil, ErrSchemaMissing
	}

	logger.Info("postgres kv store ready",
		zap.String("db", pgxCfg.ConnConfig.Database),
		zap.Int32("max_conns", pgxCfg.MaxConns))
	return pool, nil
}

// Close releases the pool and logs the result.
func Close(pool *pgxpool.Pool, logger *zap.Logger) {
	if pool == nil {
		return
	}
	pool.Close()
	if logger != nil {
		logger.Info("postgres pool closed")
	}
}
