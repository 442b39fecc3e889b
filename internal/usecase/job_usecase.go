package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
)

// listCacheTTL bounds staleness of cached list pages between the
// write-path invalidations.
const listCacheTTL = 30 * time.Second

type JobPage struct {
	Items    []domain.Job
	Total    int
	Page     int
	PageSize int
}

type JobUpdateInput struct {
	Title  *string
	Status *string
	Tags   *[]string
}

type JobUsecase interface {
	ListJobs(ctx context.Context, f repository.JobFilter) (JobPage, error)
	GetJob(ctx context.Context, id int64) (domain.Job, error)
	CreateJob(ctx context.Context, title string, tags []string) (domain.Job, error)
	UpdateJob(ctx context.Context, id int64, in JobUpdateInput) (domain.Job, error)
	ReorderJob(ctx context.Context, id int64, toOrder int) (domain.Job, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	cache  SearchCache
	logger *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, cache SearchCache, logger *log.Logger) *Jobs {
	if logger == nil {
		logger = log.Default()
	}
	return &Jobs{jobs: jobs, cache: cache, logger: logger}
}

func (u *Jobs) ListJobs(ctx context.Context, f repository.JobFilter) (JobPage, error) {
	if f.Page < 0 || f.PageSize < 0 || f.PageSize > 100 {
		return JobPage{}, ErrInvalidInput
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = 10
	}
	if f.Status != "" && f.Status != domain.JobStatusActive && f.Status != domain.JobStatusArchived {
		return JobPage{}, ErrInvalidInput
	}
	if f.Sort != "" && f.Sort != repository.JobSortOrder && f.Sort != repository.JobSortTitle {
		return JobPage{}, ErrInvalidInput
	}

	cacheKey := JobListCacheKey(f)
	if u.cache != nil {
		var cached JobPage
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Printf("jobs_list cache=hit key=%s", cacheKey)
			return cached, nil
		}
	}

	items, total, err := u.jobs.List(ctx, f)
	if err != nil {
		u.logger.Printf("jobs_list status=error err=%v", err)
		return JobPage{}, ErrInternal
	}

	page := JobPage{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, page, listCacheTTL)
	}
	return page, nil
}

func (u *Jobs) GetJob(ctx context.Context, id int64) (domain.Job, error) {
	if id <= 0 {
		return domain.Job{}, ErrInvalidInput
	}
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Job{}, ErrNotFound
		}
		u.logger.Printf("jobs_get id=%d status=error err=%v", id, err)
		return domain.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) CreateJob(ctx context.Context, title string, tags []string) (domain.Job, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Job{}, ErrInvalidInput
	}

	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		clean = append(clean, t)
	}

	j, err := u.jobs.Create(ctx, domain.Job{Title: title, Tags: clean})
	if err != nil {
		u.logger.Printf("jobs_create title=%q status=error err=%v", title, err)
		return domain.Job{}, ErrInternal
	}
	u.logger.Printf("jobs_create id=%d slug=%s", j.ID, j.Slug)
	u.invalidateLists(ctx)
	return j, nil
}

func (u *Jobs) invalidateLists(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.InvalidateLists(ctx)
	}
}

func (u *Jobs) UpdateJob(ctx context.Context, id int64, in JobUpdateInput) (domain.Job, error) {
	if id <= 0 {
		return domain.Job{}, ErrInvalidInput
	}

	var patch repository.JobPatch
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Job{}, ErrInvalidInput
		}
		patch.Title = &title
	}
	if in.Status != nil {
		status := domain.JobStatus(*in.Status)
		if status != domain.JobStatusActive && status != domain.JobStatusArchived {
			return domain.Job{}, ErrInvalidInput
		}
		patch.Status = &status
	}
	if in.Tags != nil {
		patch.Tags = in.Tags
	}

	j, err := u.jobs.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Job{}, ErrNotFound
		}
		u.logger.Printf("jobs_update id=%d status=error err=%v", id, err)
		return domain.Job{}, ErrInternal
	}
	u.invalidateLists(ctx)
	return j, nil
}

func (u *Jobs) ReorderJob(ctx context.Context, id int64, toOrder int) (domain.Job, error) {
	if id <= 0 || toOrder < 1 {
		return domain.Job{}, ErrInvalidInput
	}

	if err := u.jobs.Reorder(ctx, id, toOrder); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Job{}, ErrNotFound
		}
		u.logger.Printf("jobs_reorder id=%d to=%d status=error err=%v", id, toOrder, err)
		return domain.Job{}, ErrInternal
	}
	u.logger.Printf("jobs_reorder id=%d to=%d", id, toOrder)
	u.invalidateLists(ctx)
	return u.GetJob(ctx, id)
}
