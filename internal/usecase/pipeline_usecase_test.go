package usecase

import (
	"context"
	"errors"
	"testing"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
)

type mockCandidateRepo struct {
	candidate    domain.Candidate
	getErr       error
	updateErr    error
	stageUpdates []domain.Stage
}

func (m *mockCandidateRepo) GetByID(context.Context, int64) (domain.Candidate, error) {
	return m.candidate, m.getErr
}
func (m *mockCandidateRepo) List(context.Context, repository.CandidateFilter) ([]domain.Candidate, int, error) {
	return nil, 0, nil
}
func (m *mockCandidateRepo) ListByJob(context.Context, int64) ([]domain.Candidate, error) {
	return nil, nil
}
func (m *mockCandidateRepo) Create(_ context.Context, c domain.Candidate) (domain.Candidate, error) {
	return c, nil
}
func (m *mockCandidateRepo) UpdateStage(_ context.Context, _ int64, stage domain.Stage) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.stageUpdates = append(m.stageUpdates, stage)
	return nil
}

type mockTimelineRepo struct {
	appendErr error
	appended  []domain.TimelineEntry
}

func (m *mockTimelineRepo) Append(_ context.Context, e domain.TimelineEntry) (domain.TimelineEntry, error) {
	if m.appendErr != nil {
		return domain.TimelineEntry{}, m.appendErr
	}
	e.ID = int64(len(m.appended) + 1)
	m.appended = append(m.appended, e)
	return e, nil
}
func (m *mockTimelineRepo) AppendBatch(context.Context, []domain.TimelineEntry) error { return nil }
func (m *mockTimelineRepo) ListForCandidate(context.Context, int64) ([]domain.TimelineEntry, error) {
	return nil, nil
}

type mockNotifier struct {
	calls int
	from  domain.Stage
	to    domain.Stage
}

func (m *mockNotifier) StageMoved(_, _ int64, from, to domain.Stage) {
	m.calls++
	m.from = from
	m.to = to
}

func TestPipelineRequestMove_Success(t *testing.T) {
	candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: domain.StageScreen}}
	tl := &mockTimelineRepo{}
	notifier := &mockNotifier{}
	uc := NewPipelineUsecase(candidates, tl, notifier, nil, nil)

	c, err := uc.RequestMove(context.Background(), 7, domain.StageTech, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Stage != domain.StageTech {
		t.Fatalf("expected stage tech, got %s", c.Stage)
	}
	if len(tl.appended) != 1 {
		t.Fatalf("expected 1 timeline entry, got %d", len(tl.appended))
	}
	if tl.appended[0].Notes != "Moved to tech" {
		t.Fatalf("unexpected default note: %q", tl.appended[0].Notes)
	}
	if notifier.calls != 1 || notifier.from != domain.StageScreen || notifier.to != domain.StageTech {
		t.Fatalf("unexpected notification: %+v", notifier)
	}
}

func TestPipelineRequestMove_CustomNote(t *testing.T) {
	candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: domain.StageApplied}}
	tl := &mockTimelineRepo{}
	uc := NewPipelineUsecase(candidates, tl, nil, nil, nil)

	if _, err := uc.RequestMove(context.Background(), 7, domain.StageScreen, "Resume looked strong"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tl.appended[0].Notes != "Resume looked strong" {
		t.Fatalf("expected custom note, got %q", tl.appended[0].Notes)
	}
}

func TestPipelineRequestMove_IllegalTransition(t *testing.T) {
	cases := []struct {
		name string
		from domain.Stage
		to   domain.Stage
	}{
		{"backward", domain.StageTech, domain.StageScreen},
		{"same stage", domain.StageScreen, domain.StageScreen},
		{"out of rejected", domain.StageRejected, domain.StageScreen},
		{"hired to rejected", domain.StageHired, domain.StageRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: tc.from}}
			tl := &mockTimelineRepo{}
			uc := NewPipelineUsecase(candidates, tl, nil, nil, nil)

			_, err := uc.RequestMove(context.Background(), 7, tc.to, "")
			if !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if len(candidates.stageUpdates) != 0 {
				t.Fatalf("stage must not change on illegal move")
			}
			if len(tl.appended) != 0 {
				t.Fatalf("timeline must not change on illegal move")
			}
		})
	}
}

func TestPipelineRequestMove_ForwardSkipIsLegal(t *testing.T) {
	candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: domain.StageApplied}}
	tl := &mockTimelineRepo{}
	uc := NewPipelineUsecase(candidates, tl, nil, nil, nil)

	c, err := uc.RequestMove(context.Background(), 7, domain.StageTech, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Stage != domain.StageTech {
		t.Fatalf("expected tech, got %s", c.Stage)
	}
	if len(tl.appended) != 1 || tl.appended[0].Stage != domain.StageTech {
		t.Fatalf("expected single tech entry, got %+v", tl.appended)
	}
}

func TestPipelineRequestMove_RejectFromAnyActiveStage(t *testing.T) {
	for _, from := range []domain.Stage{domain.StageApplied, domain.StageScreen, domain.StageTech, domain.StageOffer} {
		candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: from}}
		uc := NewPipelineUsecase(candidates, &mockTimelineRepo{}, nil, nil, nil)

		c, err := uc.RequestMove(context.Background(), 7, domain.StageRejected, "")
		if err != nil {
			t.Fatalf("reject from %s: unexpected err: %v", from, err)
		}
		if c.Stage != domain.StageRejected {
			t.Fatalf("reject from %s: expected rejected, got %s", from, c.Stage)
		}
	}
}

func TestPipelineRequestMove_NotFound(t *testing.T) {
	candidates := &mockCandidateRepo{getErr: repository.ErrCandidateNotFound}
	uc := NewPipelineUsecase(candidates, &mockTimelineRepo{}, nil, nil, nil)

	_, err := uc.RequestMove(context.Background(), 99, domain.StageScreen, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPipelineRequestMove_RestoresStageWhenTimelineFails(t *testing.T) {
	candidates := &mockCandidateRepo{candidate: domain.Candidate{ID: 7, JobID: 3, Stage: domain.StageScreen}}
	tl := &mockTimelineRepo{appendErr: errors.New("insert failed")}
	notifier := &mockNotifier{}
	uc := NewPipelineUsecase(candidates, tl, notifier, nil, nil)

	_, err := uc.RequestMove(context.Background(), 7, domain.StageTech, "")
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if len(candidates.stageUpdates) != 2 {
		t.Fatalf("expected move then restore, got %v", candidates.stageUpdates)
	}
	if candidates.stageUpdates[1] != domain.StageScreen {
		t.Fatalf("expected restore to screen, got %s", candidates.stageUpdates[1])
	}
	if notifier.calls != 0 {
		t.Fatalf("no notification on failed move")
	}
}

func TestPipelineRequestMove_InvalidStage(t *testing.T) {
	uc := NewPipelineUsecase(&mockCandidateRepo{}, &mockTimelineRepo{}, nil, nil, nil)
	_, err := uc.RequestMove(context.Background(), 7, domain.Stage("interview"), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
