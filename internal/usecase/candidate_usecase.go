package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
	"talentflow/internal/timeline"
)

const appliedNote = "Application submitted successfully"

type CandidatePage struct {
	Items    []domain.Candidate
	Total    int
	Page     int
	PageSize int
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context, f repository.CandidateFilter) (CandidatePage, error)
	GetCandidate(ctx context.Context, id int64) (domain.Candidate, error)
	CreateCandidate(ctx context.Context, name, email string, jobID int64) (domain.Candidate, error)
	GetTimeline(ctx context.Context, candidateID int64) ([]domain.TimelineEntry, error)
}

type Candidates struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	timeline   repository.TimelineRepository
	cache      SearchCache
	logger     *log.Logger
	now        func() time.Time
}

func NewCandidateUsecase(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	tl repository.TimelineRepository,
	cache SearchCache,
	logger *log.Logger,
) *Candidates {
	if logger == nil {
		logger = log.Default()
	}
	return &Candidates{
		candidates: candidates,
		jobs:       jobs,
		timeline:   tl,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

func (u *Candidates) ListCandidates(ctx context.Context, f repository.CandidateFilter) (CandidatePage, error) {
	if f.Page < 0 || f.PageSize < 0 || f.PageSize > 200 {
		return CandidatePage{}, ErrInvalidInput
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = 50
	}
	if f.Stage != "" {
		if _, err := domain.ParseStage(string(f.Stage)); err != nil {
			return CandidatePage{}, ErrInvalidInput
		}
	}

	cacheKey := CandidateListCacheKey(f)
	if u.cache != nil {
		var cached CandidatePage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Printf("candidates_list cache=hit key=%s", cacheKey)
			return cached, nil
		}
	}

	items, total, err := u.candidates.List(ctx, f)
	if err != nil {
		u.logger.Printf("candidates_list status=error err=%v", err)
		return CandidatePage{}, ErrInternal
	}

	page := CandidatePage{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, page, listCacheTTL)
	}
	return page, nil
}

func (u *Candidates) GetCandidate(ctx context.Context, id int64) (domain.Candidate, error) {
	if id <= 0 {
		return domain.Candidate{}, ErrInvalidInput
	}
	c, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return domain.Candidate{}, ErrNotFound
		}
		u.logger.Printf("candidates_get id=%d status=error err=%v", id, err)
		return domain.Candidate{}, ErrInternal
	}
	return c, nil
}

// CreateCandidate registers a candidate at the applied stage and writes
// the first timeline entry.
func (u *Candidates) CreateCandidate(ctx context.Context, name, email string, jobID int64) (domain.Candidate, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || !strings.Contains(email, "@") || jobID <= 0 {
		return domain.Candidate{}, ErrInvalidInput
	}

	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Candidate{}, ErrNotFound
		}
		u.logger.Printf("candidates_create job_id=%d status=error err=%v", jobID, err)
		return domain.Candidate{}, ErrInternal
	}

	c, err := u.candidates.Create(ctx, domain.Candidate{
		Name:  name,
		Email: email,
		Stage: domain.StageApplied,
		JobID: jobID,
	})
	if err != nil {
		u.logger.Printf("candidates_create job_id=%d status=error err=%v", jobID, err)
		return domain.Candidate{}, ErrInternal
	}

	entry := timeline.LiveEntry(c.ID, domain.StageApplied, u.now().UTC(), appliedNote)
	if _, err := u.timeline.Append(ctx, entry); err != nil {
		u.logger.Printf("candidates_create id=%d step=timeline status=error err=%v", c.ID, err)
	}

	u.logger.Printf("candidates_create id=%d job_id=%d", c.ID, jobID)
	if u.cache != nil {
		_ = u.cache.InvalidateLists(ctx)
	}
	return c, nil
}

func (u *Candidates) GetTimeline(ctx context.Context, candidateID int64) ([]domain.TimelineEntry, error) {
	if candidateID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := u.candidates.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrNotFound
		}
		u.logger.Printf("candidates_timeline id=%d status=error err=%v", candidateID, err)
		return nil, ErrInternal
	}

	entries, err := u.timeline.ListForCandidate(ctx, candidateID)
	if err != nil {
		u.logger.Printf("candidates_timeline id=%d status=error err=%v", candidateID, err)
		return nil, ErrInternal
	}
	return entries, nil
}
