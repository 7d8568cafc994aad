package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

type kvRepository struct {
	client *redislib.Client
	prefix string
}

// NewKVRepository creates a Redis-backed KVStore. Keys never expire.
func NewKVRepository(client *redislib.Client, prefix string) repository.KVStore {
	if prefix == "" {
		prefix = "taskup:"
	}
	return &kvRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return result, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *kvRepository) Close() error {
	return nil
}

func (r *kvRepository) key(key string) string {
	return fmt.Sprintf("%s%s", r.prefix, key)
}
