package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

// Collection is an ordered list of T persisted as a JSON array under one key.
type Collection[T any] struct {
	key    string
	kv     repository.KVStore
	logger *zap.Logger

	mu    sync.RWMutex
	items []T
}

// LoadCollection reads key from kv. Absent, unreadable, empty ("[]") or
// malformed snapshots fall back to defaults; malformed ones are deleted.
// The resulting collection is written back immediately.
func LoadCollection[T any](ctx context.Context, kv repository.KVStore, key string, defaults func() []T, logger *zap.Logger) (*Collection[T], LoadReport) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults == nil {
		defaults = func() []T { return nil }
	}
	c := &Collection[T]{
		key:    key,
		kv:     kv,
		logger: logger.With(zap.String("key", key)),
	}
	report := LoadReport{Key: key, Source: SourceDefault}

	raw, err := kv.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		c.logger.Debug("no stored snapshot, using defaults")
	case err != nil:
		report.Err = err
		c.logger.Warn("failed to read snapshot, using defaults", zap.Error(err))
	default:
		items, decodeErr := decodeList[T](raw)
		switch {
		case decodeErr == nil:
			c.items = items
			report.Source = SourceStored
		case errors.Is(decodeErr, errEmptySnapshot):
			c.logger.Debug("stored snapshot is empty, using defaults")
		default:
			report.Err = decodeErr
			report.Discarded = true
			c.logger.Warn("discarding malformed snapshot", zap.Error(decodeErr))
			if delErr := kv.Delete(ctx, key); delErr != nil {
				c.logger.Error("failed to delete malformed snapshot", zap.Error(delErr))
			}
		}
	}

	if report.Source == SourceDefault {
		c.items = slices.Clone(defaults())
	}

	c.mu.Lock()
	report.PersistErr = c.saveLocked(ctx)
	c.mu.Unlock()

	c.logger.Info("collection loaded",
		zap.String("source", string(report.Source)),
		zap.Int("size", len(c.items)))
	return c, report
}

// Snapshot returns a copy of the current items, never nil.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Find returns the first item matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Mutate applies fn to a copy of the items. When fn reports a change the copy
// replaces the collection and is written back.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool)) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed := fn(slices.Clone(c.items))
	if !changed {
		return Outcome{}
	}
	c.items = next
	return Outcome{Applied: true, PersistErr: c.saveLocked(ctx)}
}

// Replace swaps the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) Outcome {
	return c.Mutate(ctx, func([]T) ([]T, bool) {
		return slices.Clone(items), true
	})
}

func (c *Collection[T]) saveLocked(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Error("failed to encode snapshot", zap.Error(err))
		return writeError(c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, payload); err != nil {
		c.logger.Error("failed to write snapshot", zap.Error(err))
		return writeError(c.key, err)
	}
	return nil
}

func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) {
		return nil, errEmptySnapshot
	}
	if trimmed[0] != '[' {
		return nil, errNotSequence
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptySnapshot
	}
	return items, nil
}
