package usecase

import (
	"context"
	"errors"
	"testing"

	"talentflow/internal/domain"
	"talentflow/internal/repository"
)

type mockAssessmentRepo struct {
	assessment domain.Assessment
	getErr     error
	upserted   []domain.Assessment
	submitted  []domain.AssessmentResponse
	drafts     []domain.AssessmentResponse
}

func (m *mockAssessmentRepo) GetByID(context.Context, int64) (domain.Assessment, error) {
	return m.assessment, m.getErr
}
func (m *mockAssessmentRepo) GetByJobStage(context.Context, int64, domain.Stage) (domain.Assessment, error) {
	return m.assessment, m.getErr
}
func (m *mockAssessmentRepo) ListByJob(context.Context, int64) ([]domain.Assessment, error) {
	return []domain.Assessment{m.assessment}, nil
}
func (m *mockAssessmentRepo) Upsert(_ context.Context, a domain.Assessment) (domain.Assessment, error) {
	a.ID = 42
	m.upserted = append(m.upserted, a)
	return a, nil
}
func (m *mockAssessmentRepo) Delete(context.Context, int64, domain.Stage) error { return nil }
func (m *mockAssessmentRepo) SaveDraft(_ context.Context, r domain.AssessmentResponse) (domain.AssessmentResponse, error) {
	m.drafts = append(m.drafts, r)
	return r, nil
}
func (m *mockAssessmentRepo) SaveResponse(_ context.Context, r domain.AssessmentResponse) (domain.AssessmentResponse, error) {
	m.submitted = append(m.submitted, r)
	return r, nil
}
func (m *mockAssessmentRepo) GetResponse(context.Context, int64, int64) (domain.AssessmentResponse, error) {
	return domain.AssessmentResponse{}, repository.ErrResponseNotFound
}
func (m *mockAssessmentRepo) SaveBuilderState(_ context.Context, s domain.BuilderState) (domain.BuilderState, error) {
	s.ID = 1
	return s, nil
}
func (m *mockAssessmentRepo) GetBuilderState(context.Context, int64) (domain.BuilderState, error) {
	return domain.BuilderState{}, repository.ErrBuilderStateNotFound
}

type mockJobRepo struct {
	job    domain.Job
	getErr error
}

func (m *mockJobRepo) GetByID(context.Context, int64) (domain.Job, error) { return m.job, m.getErr }
func (m *mockJobRepo) List(context.Context, repository.JobFilter) ([]domain.Job, int, error) {
	return nil, 0, nil
}
func (m *mockJobRepo) Create(_ context.Context, j domain.Job) (domain.Job, error) { return j, nil }
func (m *mockJobRepo) Update(context.Context, int64, repository.JobPatch) (domain.Job, error) {
	return m.job, m.getErr
}
func (m *mockJobRepo) Reorder(context.Context, int64, int) error { return nil }

type stubGenerator struct {
	assessment domain.Assessment
	seeds      []int64
}

func (g *stubGenerator) Generate(_ context.Context, _ domain.Job, _ domain.Stage, seed int64) (domain.Assessment, error) {
	g.seeds = append(g.seeds, seed)
	return g.assessment, nil
}

func testAssessment() domain.Assessment {
	return domain.Assessment{
		ID:    42,
		JobID: 3,
		Stage: domain.StageTech,
		Title: "Backend Engineer Assessment",
		Sections: []domain.Section{{
			ID:    1,
			Title: "Technical",
			Questions: domain.QuestionList{
				domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{ID: "q1", Prompt: "Explain indexes", Required: true}},
				domain.NumericQuestion{QuestionBase: domain.QuestionBase{ID: "q2", Prompt: "Years of experience", Required: true}, Max: floatPtr(50)},
			},
		}},
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestGenerateAssessment_SeedAndUpsert(t *testing.T) {
	repo := &mockAssessmentRepo{}
	gen := &stubGenerator{assessment: testAssessment()}
	uc := NewAssessmentUsecase(repo, &mockCandidateRepo{}, &mockJobRepo{job: domain.Job{ID: 3, Title: "Backend Engineer"}}, gen, nil)

	a, err := uc.GenerateAssessment(context.Background(), 3, domain.StageTech)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.ID != 42 {
		t.Fatalf("expected stored assessment, got id %d", a.ID)
	}
	// jobID*1000 + len("tech")
	if len(gen.seeds) != 1 || gen.seeds[0] != 3004 {
		t.Fatalf("unexpected seed: %v", gen.seeds)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected upsert, got %d", len(repo.upserted))
	}
}

func TestGenerateAssessment_JobNotFound(t *testing.T) {
	uc := NewAssessmentUsecase(&mockAssessmentRepo{}, &mockCandidateRepo{}, &mockJobRepo{getErr: repository.ErrJobNotFound}, &stubGenerator{}, nil)
	_, err := uc.GenerateAssessment(context.Background(), 3, domain.StageTech)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateAssessment_RejectedStage(t *testing.T) {
	uc := NewAssessmentUsecase(&mockAssessmentRepo{}, &mockCandidateRepo{}, &mockJobRepo{}, &stubGenerator{}, nil)
	_, err := uc.GenerateAssessment(context.Background(), 3, domain.StageRejected)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitResponse_CollectsViolations(t *testing.T) {
	repo := &mockAssessmentRepo{assessment: testAssessment()}
	uc := NewAssessmentUsecase(repo, &mockCandidateRepo{candidate: domain.Candidate{ID: 7}}, &mockJobRepo{}, &stubGenerator{}, nil)

	_, err := uc.SubmitResponse(context.Background(), 7, 3, domain.StageTech, domain.ResponseSet{
		"q2": float64(60),
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 2 {
		t.Fatalf("expected violations for q1 and q2, got %+v", verr.Violations)
	}
	if len(repo.submitted) != 0 {
		t.Fatalf("invalid submission must not be stored")
	}
}

func TestSubmitResponse_Valid(t *testing.T) {
	repo := &mockAssessmentRepo{assessment: testAssessment()}
	uc := NewAssessmentUsecase(repo, &mockCandidateRepo{candidate: domain.Candidate{ID: 7}}, &mockJobRepo{}, &stubGenerator{}, nil)

	_, err := uc.SubmitResponse(context.Background(), 7, 3, domain.StageTech, domain.ResponseSet{
		"q1": "Indexes speed up lookups",
		"q2": float64(5),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.submitted) != 1 {
		t.Fatalf("expected stored submission")
	}
	if repo.submitted[0].AssessmentID != 42 {
		t.Fatalf("unexpected assessment id: %d", repo.submitted[0].AssessmentID)
	}
}

func TestSaveDraft_SkipsValidation(t *testing.T) {
	repo := &mockAssessmentRepo{assessment: testAssessment()}
	uc := NewAssessmentUsecase(repo, &mockCandidateRepo{candidate: domain.Candidate{ID: 7}}, &mockJobRepo{}, &stubGenerator{}, nil)

	// Incomplete answers are fine for a draft.
	_, err := uc.SaveDraft(context.Background(), 7, 3, domain.StageTech, domain.ResponseSet{"q2": float64(60)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.drafts) != 1 {
		t.Fatalf("expected stored draft")
	}
}

func TestSaveAssessment_DuplicateQuestionIDs(t *testing.T) {
	a := testAssessment()
	a.Sections = append(a.Sections, domain.Section{
		ID:    2,
		Title: "Extra",
		Questions: domain.QuestionList{
			domain.ShortTextQuestion{QuestionBase: domain.QuestionBase{ID: "q1", Prompt: "Duplicate id"}},
		},
	})

	uc := NewAssessmentUsecase(&mockAssessmentRepo{}, &mockCandidateRepo{}, &mockJobRepo{job: domain.Job{ID: 3}}, &stubGenerator{}, nil)
	_, err := uc.SaveAssessment(context.Background(), a)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
