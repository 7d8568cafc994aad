package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
	"github.com/fastygo/taskup/internal/seed"
	"github.com/fastygo/taskup/repository"
	authUC "github.com/fastygo/taskup/usecase/auth"
	groupUC "github.com/fastygo/taskup/usecase/group"
	participantUC "github.com/fastygo/taskup/usecase/participant"
	taskUC "github.com/fastygo/taskup/usecase/task"
	viewsUC "github.com/fastygo/taskup/usecase/views"
)

// StoreOptions configures LoadStores.
type StoreOptions struct {
	Seed     *seed.Data
	Tokens   authUC.TokenOptions
	Location *time.Location
	Logger   *zap.Logger
	// AuthOptions are passed to the auth use case.
	AuthOptions []authUC.Option
}

// Stores holds the use cases backed by one KV store.
type Stores struct {
	Tasks        *taskUC.UseCase
	Groups       *groupUC.UseCase
	Participants *participantUC.UseCase
	Auth         *authUC.UseCase
	Views        *viewsUC.UseCase
	Reports      []persist.LoadReport
}

// LoadStores reads the four persisted stores concurrently. Load never fails on
// bad data; only a cancelled ctx aborts it.
func LoadStores(ctx context.Context, kv repository.KVStore, opts StoreOptions) (*Stores, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	data := opts.Seed
	if data == nil {
		var err error
		if data, err = seed.Load(); err != nil {
			return nil, err
		}
	}

	var (
		tasks        *persist.Collection[domain.Task]
		groups       *persist.Collection[domain.Group]
		participants *persist.Collection[domain.Participant]
		reports      [4]persist.LoadReport
		authReports  []persist.LoadReport
	)
	auth := authUC.New(kv, opts.Tokens, logger.Named("auth"), opts.AuthOptions...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, reports[0] = persist.LoadCollection(gctx, kv, repository.KeyTasks, data.Tasks, logger)
		return gctx.Err()
	})
	g.Go(func() error {
		groups, reports[1] = persist.LoadCollection(gctx, kv, repository.KeyGroups, func() []domain.Group { return []domain.Group{} }, logger)
		return gctx.Err()
	})
	g.Go(func() error {
		participants, reports[2] = persist.LoadCollection(gctx, kv, repository.KeyParticipants, func() []domain.Participant { return []domain.Participant{} }, logger)
		return gctx.Err()
	})
	g.Go(func() error {
		authReports = auth.Load(gctx)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	taskUseCase := taskUC.New(tasks, logger.Named("tasks"))
	groupUseCase := groupUC.New(groups, taskUseCase, logger.Named("groups"))
	participantUseCase := participantUC.New(participants, data.Participants, logger.Named("participants"))

	all := append(reports[:3:3], authReports...)
	for _, r := range all {
		logger.Info("store loaded",
			zap.String("key", r.Key),
			zap.String("source", string(r.Source)),
			zap.Bool("discarded", r.Discarded))
	}

	return &Stores{
		Tasks:        taskUseCase,
		Groups:       groupUseCase,
		Participants: participantUseCase,
		Auth:         auth,
		Views:        viewsUC.New(taskUseCase, groupUseCase, participantUseCase, opts.Location),
		Reports:      all,
	}, nil
}
