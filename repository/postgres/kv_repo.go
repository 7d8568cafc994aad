package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

type kvRepository struct {
	pool *pgxpool.Pool
}

// NewKVRepository returns a Postgres-backed KVStore over the kv_entries table.
func NewKVRepository(pool *pgxpool.Pool) repository.KVStore {
	return &kvRepository{pool: pool}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, key)
	return err
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close is a no-op: the pool is owned and closed by the lifecycle manager.
func (r *kvRepository) Close() error {
	return nil
}
