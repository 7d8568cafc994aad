package bolt

import (
	"context"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

// KVRepository stores every key in a single Bolt bucket.
type KVRepository struct {
	db     *bbolt.DB
	bucket []byte
}

// NewKVRepository wraps an open Bolt database. The bucket must already exist.
func NewKVRepository(db *bbolt.DB, bucket string) *KVRepository {
	return &KVRepository{db: db, bucket: []byte(bucket)}
}

var _ repository.KVStore = (*KVRepository)(nil)

func (r *KVRepository) Get(_ context.Context, key string) ([]byte, error) {
	if r == nil || r.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	var value []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(r.bucket).Get([]byte(key))
		if raw == nil {
			return domain.ErrKeyNotFound
		}
		value = append([]byte(nil), raw...)
		return nil
	})
	return value, err
}

func (r *KVRepository) Put(_ context.Context, key string, value []byte) error {
	if r == nil || r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	if key == "" {
		return domain.ErrInvalidPayload
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(key), value)
	})
}

func (r *KVRepository) Delete(_ context.Context, key string) error {
	if r == nil || r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(r.bucket).Delete([]byte(key))
	})
}

// Ping verifies the bucket is still readable.
func (r *KVRepository) Ping(_ context.Context) error {
	if r == nil || r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return bbolt.ErrBucketNotFound
		}
		return nil
	})
}

// Size returns the number of stored keys.
func (r *KVRepository) Size() (int, error) {
	if r == nil || r.db == nil {
		return 0, bbolt.ErrDatabaseNotOpen
	}
	var count int
	err := r.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(r.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (r *KVRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
