// Package memory provides a process-local KVStore used by tests.
package memory

import (
	"context"
	"sync"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
)

// Store keeps values in a map guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

var _ repository.KVStore = (*Store)(nil)

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return domain.ErrInvalidPayload
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
