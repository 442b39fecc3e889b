package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
	"talentflow/internal/timeline"
)

// StageNotifier publishes stage moves to interested listeners. A nil
// notifier is allowed; moves then happen silently.
type StageNotifier interface {
	StageMoved(candidateID, jobID int64, from, to domain.Stage)
}

type PipelineUsecase interface {
	RequestMove(ctx context.Context, candidateID int64, to domain.Stage, notes string) (domain.Candidate, error)
}

type Pipeline struct {
	candidates repository.CandidateRepository
	timeline   repository.TimelineRepository
	notifier   StageNotifier
	cache      SearchCache
	logger     *log.Logger
	now        func() time.Time
}

func NewPipelineUsecase(
	candidates repository.CandidateRepository,
	tl repository.TimelineRepository,
	notifier StageNotifier,
	cache SearchCache,
	logger *log.Logger,
) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		candidates: candidates,
		timeline:   tl,
		notifier:   notifier,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// RequestMove advances a candidate to a new stage. The stage update and
// the timeline append are two writes; if the append fails the stage is
// restored so the candidate never ends up ahead of their history.
func (u *Pipeline) RequestMove(ctx context.Context, candidateID int64, to domain.Stage, notes string) (domain.Candidate, error) {
	if candidateID <= 0 {
		return domain.Candidate{}, ErrInvalidInput
	}
	if _, err := domain.ParseStage(string(to)); err != nil {
		return domain.Candidate{}, ErrInvalidInput
	}

	c, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return domain.Candidate{}, ErrNotFound
		}
		u.logger.Printf("pipeline_move id=%d status=error err=%v", candidateID, err)
		return domain.Candidate{}, ErrInternal
	}

	from := c.Stage
	if !domain.IsLegalTransition(from, to) {
		u.logger.Printf("pipeline_move id=%d from=%s to=%s status=illegal", candidateID, from, to)
		return domain.Candidate{}, ErrIllegalTransition
	}

	if err := u.candidates.UpdateStage(ctx, candidateID, to); err != nil {
		u.logger.Printf("pipeline_move id=%d from=%s to=%s status=error err=%v", candidateID, from, to, err)
		return domain.Candidate{}, ErrInternal
	}

	entry := timeline.LiveEntry(candidateID, to, u.now().UTC(), notes)
	if _, err := u.timeline.Append(ctx, entry); err != nil {
		u.logger.Printf("pipeline_move id=%d from=%s to=%s step=timeline status=error err=%v", candidateID, from, to, err)
		if rbErr := u.candidates.UpdateStage(ctx, candidateID, from); rbErr != nil {
			u.logger.Printf("pipeline_move id=%d step=restore status=error err=%v", candidateID, rbErr)
		}
		return domain.Candidate{}, ErrInternal
	}

	c.Stage = to
	u.logger.Printf("pipeline_move id=%d from=%s to=%s status=ok", candidateID, from, to)

	if u.cache != nil {
		_ = u.cache.InvalidateLists(ctx)
	}
	if u.notifier != nil {
		u.notifier.StageMoved(candidateID, c.JobID, from, to)
	}
	return c, nil
}
