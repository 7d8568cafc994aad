package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

// Record is a single optional value persisted as a JSON object under one key.
// An unset record has no stored key at all.
type Record[T any] struct {
	key    string
	kv     repository.KVStore
	logger *zap.Logger

	mu    sync.RWMutex
	value *T
}

// LoadRecord reads key from kv. Malformed values are deleted and the record
// starts unset.
func LoadRecord[T any](ctx context.Context, kv repository.KVStore, key string, logger *zap.Logger) (*Record[T], LoadReport) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Record[T]{
		key:    key,
		kv:     kv,
		logger: logger.With(zap.String("key", key)),
	}
	report := LoadReport{Key: key, Source: SourceDefault}

	raw, err := kv.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
	case err != nil:
		report.Err = err
		r.logger.Warn("failed to read record", zap.Error(err))
	default:
		value, decodeErr := decodeObject[T](raw)
		if decodeErr != nil {
			report.Err = decodeErr
			report.Discarded = true
			r.logger.Warn("discarding malformed record", zap.Error(decodeErr))
			if delErr := kv.Delete(ctx, key); delErr != nil {
				r.logger.Error("failed to delete malformed record", zap.Error(delErr))
			}
			break
		}
		r.value = value
		report.Source = SourceStored
	}
	return r, report
}

// Get returns a copy of the value and whether it is set.
func (r *Record[T]) Get() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// Set stores value, replacing any previous one.
func (r *Record[T]) Set(ctx context.Context, value T) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = &value
	return Outcome{Applied: true, PersistErr: r.saveLocked(ctx)}
}

// Update applies fn to the current value only when one is set.
func (r *Record[T]) Update(ctx context.Context, fn func(*T)) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.value == nil {
		return Outcome{}
	}
	next := *r.value
	fn(&next)
	r.value = &next
	return Outcome{Applied: true, PersistErr: r.saveLocked(ctx)}
}

// Clear unsets the record and removes its key.
func (r *Record[T]) Clear(ctx context.Context) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	applied := r.value != nil
	r.value = nil
	if err := r.kv.Delete(ctx, r.key); err != nil {
		r.logger.Error("failed to delete record", zap.Error(err))
		return Outcome{Applied: applied, PersistErr: writeError(r.key, err)}
	}
	return Outcome{Applied: applied}
}

func (r *Record[T]) saveLocked(ctx context.Context) error {
	payload, err := json.Marshal(r.value)
	if err != nil {
		r.logger.Error("failed to encode record", zap.Error(err))
		return writeError(r.key, err)
	}
	if err := r.kv.Put(ctx, r.key, payload); err != nil {
		r.logger.Error("failed to write record", zap.Error(err))
		return writeError(r.key, err)
	}
	return nil
}

func decodeObject[T any](raw []byte) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, err
	}
	return &value, nil
}
