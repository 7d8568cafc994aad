package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/repository"
	"github.com/fastygo/taskup/repository/memory"
)

func TestReadOnlyDropsWrites(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	if err := kv.Put(ctx, repository.KeyTasks, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	ro := repository.ReadOnly(kv)
	if err := ro.Put(ctx, repository.KeyGroups, []byte(`[]`)); err != nil {
		t.Fatalf("read-only Put: %v", err)
	}
	if err := ro.Delete(ctx, repository.KeyTasks); err != nil {
		t.Fatalf("read-only Delete: %v", err)
	}

	if _, err := kv.Get(ctx, repository.KeyGroups); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("groups should not be written, got %v", err)
	}
	got, err := ro.Get(ctx, repository.KeyTasks)
	if err != nil || string(got) != `[{"id":"a"}]` {
		t.Errorf("tasks: %q %v", got, err)
	}
}
