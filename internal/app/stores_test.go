package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/app"
	"github.com/fastygo/taskup/internal/persist"
	"github.com/fastygo/taskup/repository"
	"github.com/fastygo/taskup/repository/memory"
	authUC "github.com/fastygo/taskup/usecase/auth"
)

func options() app.StoreOptions {
	return app.StoreOptions{
		Tokens:      authUC.TokenOptions{Secret: "s", TTL: time.Hour},
		Location:    time.UTC,
		AuthOptions: []authUC.Option{authUC.WithHashCost(bcrypt.MinCost)},
	}
}

func TestLoadStores_FreshInstall(t *testing.T) {
	kv := memory.New()
	stores, err := app.LoadStores(context.Background(), kv, options())
	if err != nil {
		t.Fatalf("LoadStores: %v", err)
	}

	tasks := stores.Tasks.List()
	if len(tasks) != 2 || tasks[0].ID != "t1_mock" || tasks[1].Subject != "Cálculo" {
		t.Errorf("expected demo tasks, got %+v", tasks)
	}
	if len(stores.Groups.List()) != 0 || len(stores.Participants.List()) != 0 {
		t.Error("groups and participants start empty")
	}
	if !stores.Auth.Ready() {
		t.Error("auth should be ready after loading")
	}
	if len(stores.Reports) != 5 {
		t.Errorf("reports: got %d, want 5", len(stores.Reports))
	}
	for _, r := range stores.Reports {
		if r.Source != persist.SourceDefault {
			t.Errorf("%s: source %s on a fresh install", r.Key, r.Source)
		}
	}

	// Defaults are mirrored back on load.
	if _, err := kv.Get(context.Background(), repository.KeyTasks); err != nil {
		t.Errorf("tasks should be written after load: %v", err)
	}
}

func TestLoadStores_ReadOnlyLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	stores, err := app.LoadStores(ctx, repository.ReadOnly(kv), options())
	if err != nil {
		t.Fatalf("LoadStores: %v", err)
	}
	if len(stores.Tasks.List()) != 2 {
		t.Errorf("demo tasks should still be visible, got %d", len(stores.Tasks.List()))
	}
	for _, key := range []string{repository.KeyTasks, repository.KeyGroups, repository.KeyParticipants} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Errorf("%s: should not be written, got %v", key, err)
		}
	}
}

func TestLoadStores_RestoresState(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	first, err := app.LoadStores(ctx, kv, options())
	if err != nil {
		t.Fatalf("LoadStores: %v", err)
	}
	g, _, err := first.Groups.Add(ctx, domain.NewGroup{Name: "Lab", Key: "k"})
	if err != nil {
		t.Fatalf("Add group: %v", err)
	}
	first.Groups.AssignTask(ctx, g.ID, domain.NewTask{Title: "Informe", DueDate: "2025-10-21"})
	first.Participants.LoadSample(ctx)
	first.Auth.Register(ctx, domain.User{Name: "Ana", Email: "ana@x.io"}, "pw")

	second, err := app.LoadStores(ctx, kv, options())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	withTasks, err := second.Groups.WithTasks(g.ID)
	if err != nil || len(withTasks.Tasks) != 1 {
		t.Fatalf("group tasks after reload: %+v %v", withTasks, err)
	}
	if len(second.Tasks.List()) != 3 {
		t.Errorf("tasks after reload: %d", len(second.Tasks.List()))
	}
	if len(second.Views.Leaderboard()) != 3 {
		t.Errorf("leaderboard after reload: %d", len(second.Views.Leaderboard()))
	}
	if user, ok := second.Auth.Current(); !ok || user.Name != "Ana" {
		t.Errorf("session after reload: %+v %v", user, ok)
	}
}

func TestLoadStores_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := app.LoadStores(ctx, memory.New(), options()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
