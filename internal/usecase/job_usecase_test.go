package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
)

type mockListJobRepo struct {
	mockJobRepo
	items []domain.Job
	total int
	calls int
}

func (m *mockListJobRepo) List(context.Context, repository.JobFilter) ([]domain.Job, int, error) {
	m.calls++
	return m.items, m.total, nil
}

type mockCache struct {
	store map[string][]byte
	sets  int
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.store == nil {
		m.store = map[string][]byte{}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	m.sets++
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *mockCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (m *mockCache) InvalidateLists(context.Context) error {
	m.store = map[string][]byte{}
	return nil
}

func TestListJobs_CachesSecondRead(t *testing.T) {
	repo := &mockListJobRepo{
		items: []domain.Job{{ID: 1, Title: "Backend Engineer", Slug: "backend-engineer", Status: domain.JobStatusActive}},
		total: 1,
	}
	cache := &mockCache{}
	uc := NewJobUsecase(repo, cache, nil)

	f := repository.JobFilter{Search: "backend", Page: 1, PageSize: 10}

	first, err := uc.ListJobs(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Total != 1 || len(first.Items) != 1 {
		t.Fatalf("unexpected page: %+v", first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache set, got %d", cache.sets)
	}

	second, err := uc.ListJobs(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected repo hit once, got %d", repo.calls)
	}
	if second.Items[0].Slug != "backend-engineer" {
		t.Fatalf("unexpected cached item: %+v", second.Items[0])
	}
}

func TestListJobs_InvalidFilter(t *testing.T) {
	uc := NewJobUsecase(&mockListJobRepo{}, nil, nil)

	if _, err := uc.ListJobs(context.Background(), repository.JobFilter{PageSize: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative page size, got %v", err)
	}
	if _, err := uc.ListJobs(context.Background(), repository.JobFilter{Status: "open"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := uc.ListJobs(context.Background(), repository.JobFilter{Sort: "salary"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown sort, got %v", err)
	}
}

func TestCreateJob_Validation(t *testing.T) {
	uc := NewJobUsecase(&mockListJobRepo{}, nil, nil)
	if _, err := uc.CreateJob(context.Background(), "   ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestReorderJob_Validation(t *testing.T) {
	uc := NewJobUsecase(&mockListJobRepo{}, nil, nil)
	if _, err := uc.ReorderJob(context.Background(), 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for order 0, got %v", err)
	}
}
