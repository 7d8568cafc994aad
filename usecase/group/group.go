package group

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
)

// TaskSource is the slice of the task use case groups depend on.
type TaskSource interface {
	ByGroup(groupID string) []domain.Task
	Add(ctx context.Context, in domain.NewTask) (domain.Task, persist.Outcome)
}

// UseCase owns the group collection. Group task lists are always derived from
// the task collection, never read from the stored group.
type UseCase struct {
	groups *persist.Collection[domain.Group]
	tasks  TaskSource
	logger *zap.Logger
}

func New(groups *persist.Collection[domain.Group], tasks TaskSource, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		groups: groups,
		tasks:  tasks,
		logger: logger,
	}
}

// List returns the groups, newest first, without task lists.
func (uc *UseCase) List() []domain.Group {
	groups := uc.groups.Snapshot()
	for i := range groups {
		groups[i].Tasks = []domain.Task{}
	}
	return groups
}

// Names maps group ids to names.
func (uc *UseCase) Names() map[string]string {
	names := make(map[string]string)
	for _, g := range uc.groups.Snapshot() {
		names[g.ID] = g.Name
	}
	return names
}

// Get returns the stored group with an empty task list.
func (uc *UseCase) Get(id string) (domain.Group, error) {
	g, ok := uc.groups.Find(func(g domain.Group) bool { return g.ID == id })
	if !ok {
		return domain.Group{}, domain.ErrGroupNotFound
	}
	g.Tasks = []domain.Task{}
	return g, nil
}

// WithTasks returns the group with its tasks derived from the task collection.
func (uc *UseCase) WithTasks(id string) (domain.Group, error) {
	g, ok := uc.groups.Find(func(g domain.Group) bool { return g.ID == id })
	if !ok {
		return domain.Group{}, domain.ErrGroupNotFound
	}
	g.Tasks = uc.tasks.ByGroup(id)
	if g.Tasks == nil {
		g.Tasks = []domain.Task{}
	}
	return g, nil
}

// Add creates a group. A blank key is rejected without touching the collection.
func (uc *UseCase) Add(ctx context.Context, in domain.NewGroup) (domain.Group, persist.Outcome, error) {
	if strings.TrimSpace(in.Key) == "" {
		return domain.Group{}, persist.Outcome{}, domain.ErrGroupKeyRequired
	}

	g := domain.Group{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatorID:   in.CreatorID,
		Key:         in.Key,
		Tasks:       []domain.Task{},
	}
	out := uc.groups.Mutate(ctx, func(items []domain.Group) ([]domain.Group, bool) {
		return append([]domain.Group{g}, items...), true
	})
	uc.logger.Info("group created", zap.String("group_id", g.ID), zap.String("creator_id", g.CreatorID))
	return g, out, nil
}

// Join validates nameOrID and key against an existing group. Success records
// no membership.
func (uc *UseCase) Join(nameOrID, key string) (domain.Group, error) {
	g, ok := uc.groups.Find(func(g domain.Group) bool { return g.Matches(nameOrID) })
	if !ok {
		return domain.Group{}, domain.ErrGroupNotFound
	}
	if g.Key != key {
		uc.logger.Info("group join rejected", zap.String("group_id", g.ID))
		return domain.Group{}, domain.ErrGroupKeyMismatch
	}
	uc.logger.Info("group join accepted", zap.String("group_id", g.ID))
	g.Tasks = []domain.Task{}
	return g, nil
}

// AssignTask creates a task bound to the group.
func (uc *UseCase) AssignTask(ctx context.Context, groupID string, in domain.NewTask) (domain.Task, persist.Outcome, error) {
	if _, ok := uc.groups.Find(func(g domain.Group) bool { return g.ID == groupID }); !ok {
		return domain.Task{}, persist.Outcome{}, domain.ErrGroupNotFound
	}
	in.GroupID = groupID
	t, out := uc.tasks.Add(ctx, in)
	return t, out, nil
}
