package task

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
)

// UseCase owns the task collection.
type UseCase struct {
	tasks  *persist.Collection[domain.Task]
	logger *zap.Logger
}

func New(tasks *persist.Collection[domain.Task], logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns every task in insertion order.
func (uc *UseCase) List() []domain.Task {
	return uc.tasks.Snapshot()
}

func (uc *UseCase) Get(id string) (domain.Task, error) {
	t, ok := uc.tasks.Find(func(t domain.Task) bool { return t.ID == id })
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, nil
}

// ByGroup returns the tasks assigned to groupID.
func (uc *UseCase) ByGroup(groupID string) []domain.Task {
	var out []domain.Task
	for _, t := range uc.tasks.Snapshot() {
		if t.GroupID == groupID {
			out = append(out, t)
		}
	}
	return out
}

// Subjects returns the distinct non-blank subjects, sorted.
func (uc *UseCase) Subjects() []string {
	seen := make(map[string]struct{})
	subjects := []string{}
	for _, t := range uc.tasks.Snapshot() {
		s := strings.TrimSpace(t.Subject)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		subjects = append(subjects, s)
	}
	slices.Sort(subjects)
	return subjects
}

// Add appends a new task. The title is not validated here; callers reject
// blank titles before calling.
func (uc *UseCase) Add(ctx context.Context, in domain.NewTask) (domain.Task, persist.Outcome) {
	t := domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Subject:     in.Subject,
		DueDate:     in.DueDate,
		GroupID:     in.GroupID,
		Points:      domain.DefaultTaskPoints,
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Points != nil {
		t.Points = *in.Points
	}

	out := uc.tasks.Mutate(ctx, func(items []domain.Task) ([]domain.Task, bool) {
		return append(items, t), true
	})
	uc.logger.Debug("task added", zap.String("task_id", t.ID), zap.String("group_id", t.GroupID))
	return t, out
}

// Update merges patch into the task with id. Unknown ids are ignored.
func (uc *UseCase) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, persist.Outcome) {
	var updated domain.Task
	out := uc.tasks.Mutate(ctx, func(items []domain.Task) ([]domain.Task, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		patch.Apply(&items[i])
		updated = items[i]
		return items, true
	})
	return updated, out
}

// ToggleComplete flips the completion flag. Unknown ids are ignored.
func (uc *UseCase) ToggleComplete(ctx context.Context, id string) (domain.Task, persist.Outcome) {
	var toggled domain.Task
	out := uc.tasks.Mutate(ctx, func(items []domain.Task) ([]domain.Task, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].Completed = !items[i].Completed
		toggled = items[i]
		return items, true
	})
	return toggled, out
}

// Delete removes the task with id. Unknown ids are ignored.
func (uc *UseCase) Delete(ctx context.Context, id string) persist.Outcome {
	return uc.tasks.Mutate(ctx, func(items []domain.Task) ([]domain.Task, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return slices.Delete(items, i, i+1), true
	})
}

func indexOf(items []domain.Task, id string) int {
	return slices.IndexFunc(items, func(t domain.Task) bool { return t.ID == id })
}
