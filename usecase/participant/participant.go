package participant

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
)

// SampleSource produces the demo leaderboard rows.
type SampleSource func() []domain.Participant

type UseCase struct {
	participants *persist.Collection[domain.Participant]
	sample       SampleSource
	logger       *zap.Logger
}

func New(participants *persist.Collection[domain.Participant], sample SampleSource, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sample == nil {
		sample = func() []domain.Participant { return nil }
	}
	return &UseCase{
		participants: participants,
		sample:       sample,
		logger:       logger,
	}
}

func (uc *UseCase) List() []domain.Participant {
	return uc.participants.Snapshot()
}

// Get looks up a participant by id.
func (uc *UseCase) Get(id string) (domain.Participant, error) {
	p, ok := uc.participants.Find(func(p domain.Participant) bool { return p.ID == id })
	if !ok {
		return domain.Participant{}, domain.ErrParticipantMissing
	}
	return p, nil
}

// Add registers a participant with zero points at the top of the list.
func (uc *UseCase) Add(ctx context.Context, in domain.NewParticipant) (domain.Participant, persist.Outcome) {
	p := domain.Participant{
		ID:     uuid.NewString(),
		Name:   in.Name,
		School: in.School,
		Avatar: in.Avatar,
	}
	out := uc.participants.Mutate(ctx, func(items []domain.Participant) ([]domain.Participant, bool) {
		return append([]domain.Participant{p}, items...), true
	})
	return p, out
}

func (uc *UseCase) Remove(ctx context.Context, id string) persist.Outcome {
	return uc.participants.Mutate(ctx, func(items []domain.Participant) ([]domain.Participant, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return append(items[:i:i], items[i+1:]...), true
	})
}

// AdjustPoints adds delta to the participant's points, never going below zero.
func (uc *UseCase) AdjustPoints(ctx context.Context, id string, delta int) (domain.Participant, persist.Outcome) {
	return uc.setPoints(ctx, id, func(current int) int { return domain.AddPoints(current, delta) })
}

// SetPoints overwrites the participant's points, clamped at zero.
func (uc *UseCase) SetPoints(ctx context.Context, id string, points int) (domain.Participant, persist.Outcome) {
	return uc.setPoints(ctx, id, func(int) int { return points })
}

// LoadSample replaces every participant with the demo rows.
func (uc *UseCase) LoadSample(ctx context.Context) ([]domain.Participant, persist.Outcome) {
	rows := uc.sample()
	out := uc.participants.Replace(ctx, rows)
	uc.logger.Info("sample participants loaded", zap.Int("count", len(rows)))
	return rows, out
}

// ResetAll removes every participant.
func (uc *UseCase) ResetAll(ctx context.Context) persist.Outcome {
	return uc.participants.Replace(ctx, []domain.Participant{})
}

func (uc *UseCase) setPoints(ctx context.Context, id string, next func(int) int) (domain.Participant, persist.Outcome) {
	var updated domain.Participant
	out := uc.participants.Mutate(ctx, func(items []domain.Participant) ([]domain.Participant, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].Points = domain.ClampPoints(next(items[i].Points))
		updated = items[i]
		return items, true
	})
	return updated, out
}

func indexOf(items []domain.Participant, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
