package group_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
	"github.com/fastygo/taskup/repository"
	"github.com/fastygo/taskup/repository/memory"
	"github.com/fastygo/taskup/usecase/group"
	"github.com/fastygo/taskup/usecase/task"
)

type fixture struct {
	groups *group.UseCase
	tasks  *task.UseCase
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	kv := memory.New()
	taskCol, _ := persist.LoadCollection(ctx, kv, repository.KeyTasks, func() []domain.Task { return nil }, nil)
	groupCol, _ := persist.LoadCollection(ctx, kv, repository.KeyGroups, func() []domain.Group { return nil }, nil)
	tasks := task.New(taskCol, nil)
	return fixture{groups: group.New(groupCol, tasks, nil), tasks: tasks}
}

func TestUseCase_AddRejectsEmptyKey(t *testing.T) {
	f := setup(t)

	for _, key := range []string{"", "   "} {
		_, out, err := f.groups.Add(context.Background(), domain.NewGroup{Name: "Proyecto", Key: key})
		if !errors.Is(err, domain.ErrGroupKeyRequired) {
			t.Errorf("key %q: got %v, want ErrGroupKeyRequired", key, err)
		}
		if out.Applied {
			t.Errorf("key %q: outcome should not be applied", key)
		}
	}
	if n := len(f.groups.List()); n != 0 {
		t.Errorf("groups: got %d, want 0", n)
	}
}

func TestUseCase_AddPrepends(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, _, err := f.groups.Add(ctx, domain.NewGroup{Name: "Primero", Key: "k1", CreatorID: "u1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, _, _ := f.groups.Add(ctx, domain.NewGroup{Name: "Segundo", Key: "k2", CreatorID: "u1"})

	list := f.groups.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", list)
	}
	if first.Tasks == nil || len(first.Tasks) != 0 {
		t.Errorf("expected empty task list, got %+v", first.Tasks)
	}
}

func TestUseCase_Join(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	g, _, _ := f.groups.Add(ctx, domain.NewGroup{Name: "Proyecto Final", Key: "proy123"})

	tests := []struct {
		name     string
		nameOrID string
		key      string
		wantErr  error
	}{
		{"by name", "Proyecto Final", "proy123", nil},
		{"by name any case", "proyecto FINAL", "proy123", nil},
		{"by id", g.ID, "proy123", nil},
		{"wrong key", "Proyecto Final", "nope", domain.ErrGroupKeyMismatch},
		{"unknown", "Otro", "proy123", domain.ErrGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined, err := f.groups.Join(tt.nameOrID, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Join: got %v, want %v", err, tt.wantErr)
			}
			if err == nil && joined.ID != g.ID {
				t.Errorf("joined %q, want %q", joined.ID, g.ID)
			}
		})
	}

	// Joining never changes the stored group.
	if n := len(f.groups.List()); n != 1 {
		t.Errorf("groups: got %d, want 1", n)
	}
}

func TestUseCase_TasksAreDerived(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	g, _, _ := f.groups.Add(ctx, domain.NewGroup{Name: "Lab", Key: "k"})

	assigned, _, err := f.groups.AssignTask(ctx, g.ID, domain.NewTask{Title: "Informe"})
	if err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	if assigned.GroupID != g.ID {
		t.Errorf("GroupID: got %q, want %q", assigned.GroupID, g.ID)
	}
	f.tasks.Add(ctx, domain.NewTask{Title: "Suelta"})

	withTasks, err := f.groups.WithTasks(g.ID)
	if err != nil {
		t.Fatalf("WithTasks: %v", err)
	}
	if len(withTasks.Tasks) != 1 || withTasks.Tasks[0].ID != assigned.ID {
		t.Fatalf("derived tasks: %+v", withTasks.Tasks)
	}

	f.tasks.ToggleComplete(ctx, assigned.ID)
	withTasks, _ = f.groups.WithTasks(g.ID)
	if !withTasks.Tasks[0].Completed {
		t.Error("group view must reflect task changes immediately")
	}

	f.tasks.Delete(ctx, assigned.ID)
	withTasks, _ = f.groups.WithTasks(g.ID)
	if len(withTasks.Tasks) != 0 {
		t.Errorf("expected no tasks after delete, got %+v", withTasks.Tasks)
	}
}

func TestUseCase_AssignTaskUnknownGroup(t *testing.T) {
	f := setup(t)
	_, _, err := f.groups.AssignTask(context.Background(), "missing", domain.NewTask{Title: "x"})
	if !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}
	if n := len(f.tasks.List()); n != 0 {
		t.Errorf("tasks: got %d, want 0", n)
	}
}

func TestUseCase_WithTasksUnknown(t *testing.T) {
	f := setup(t)
	if _, err := f.groups.WithTasks("missing"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("got %v, want ErrGroupNotFound", err)
	}
}
