package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"talentflow/internal/assessment"
	"talentflow/internal/domain"
	"talentflow/internal/repository"
)

type AssessmentGenerator interface {
	Generate(ctx context.Context, job domain.Job, stage domain.Stage, seed int64) (domain.Assessment, error)
}

type AssessmentUsecase interface {
	GenerateAssessment(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error)
	GetAssessment(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error)
	ListAssessments(ctx context.Context, jobID int64) ([]domain.Assessment, error)
	SaveAssessment(ctx context.Context, a domain.Assessment) (domain.Assessment, error)
	DeleteAssessment(ctx context.Context, jobID int64, stage domain.Stage) error

	SubmitResponse(ctx context.Context, candidateID, jobID int64, stage domain.Stage, responses domain.ResponseSet) (domain.AssessmentResponse, error)
	SaveDraft(ctx context.Context, candidateID, jobID int64, stage domain.Stage, responses domain.ResponseSet) (domain.AssessmentResponse, error)
	GetResponse(ctx context.Context, candidateID, jobID int64, stage domain.Stage) (domain.AssessmentResponse, error)

	SaveBuilderState(ctx context.Context, jobID int64, state json.RawMessage) (domain.BuilderState, error)
	GetBuilderState(ctx context.Context, jobID int64) (domain.BuilderState, error)
}

type Assessments struct {
	assessments repository.AssessmentRepository
	candidates  repository.CandidateRepository
	jobs        repository.JobRepository
	generator   AssessmentGenerator
	logger      *log.Logger
}

func NewAssessmentUsecase(
	assessments repository.AssessmentRepository,
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	generator AssessmentGenerator,
	logger *log.Logger,
) *Assessments {
	if logger == nil {
		logger = log.Default()
	}
	return &Assessments{
		assessments: assessments,
		candidates:  candidates,
		jobs:        jobs,
		generator:   generator,
		logger:      logger,
	}
}

// GenerateAssessment builds the deterministic assessment for a job and
// stage and stores it, replacing any previous one for the same slot.
func (u *Assessments) GenerateAssessment(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error) {
	if jobID <= 0 || domain.StageIndex(stage) < 0 {
		return domain.Assessment{}, ErrInvalidInput
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Assessment{}, ErrNotFound
		}
		u.logger.Printf("assessment_generate job_id=%d status=error err=%v", jobID, err)
		return domain.Assessment{}, ErrInternal
	}

	seed := assessment.SeedFor(jobID, stage)
	a, err := u.generator.Generate(ctx, job, stage, seed)
	if err != nil {
		u.logger.Printf("assessment_generate job_id=%d stage=%s status=error err=%v", jobID, stage, err)
		return domain.Assessment{}, ErrInternal
	}

	saved, err := u.assessments.Upsert(ctx, a)
	if err != nil {
		u.logger.Printf("assessment_generate job_id=%d stage=%s step=store status=error err=%v", jobID, stage, err)
		return domain.Assessment{}, ErrInternal
	}
	u.logger.Printf("assessment_generate job_id=%d stage=%s id=%d seed=%d", jobID, stage, saved.ID, seed)
	return saved, nil
}

func (u *Assessments) GetAssessment(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error) {
	if jobID <= 0 {
		return domain.Assessment{}, ErrInvalidInput
	}
	if _, err := domain.ParseStage(string(stage)); err != nil {
		return domain.Assessment{}, ErrInvalidInput
	}

	a, err := u.assessments.GetByJobStage(ctx, jobID, stage)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return domain.Assessment{}, ErrNotFound
		}
		u.logger.Printf("assessment_get job_id=%d stage=%s status=error err=%v", jobID, stage, err)
		return domain.Assessment{}, ErrInternal
	}
	return a, nil
}

func (u *Assessments) ListAssessments(ctx context.Context, jobID int64) ([]domain.Assessment, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.assessments.ListByJob(ctx, jobID)
	if err != nil {
		u.logger.Printf("assessment_list job_id=%d status=error err=%v", jobID, err)
		return nil, ErrInternal
	}
	return out, nil
}

// SaveAssessment stores a builder-authored assessment for a job and
// stage. Question ids must be unique across sections.
func (u *Assessments) SaveAssessment(ctx context.Context, a domain.Assessment) (domain.Assessment, error) {
	if a.JobID <= 0 || domain.StageIndex(a.Stage) < 0 || strings.TrimSpace(a.Title) == "" {
		return domain.Assessment{}, ErrInvalidInput
	}
	if len(a.Sections) == 0 {
		return domain.Assessment{}, ErrInvalidInput
	}

	ids := a.QuestionIDs()
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return domain.Assessment{}, ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			return domain.Assessment{}, ErrInvalidInput
		}
		seen[id] = struct{}{}
	}

	if _, err := u.jobs.GetByID(ctx, a.JobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.Assessment{}, ErrNotFound
		}
		u.logger.Printf("assessment_save job_id=%d status=error err=%v", a.JobID, err)
		return domain.Assessment{}, ErrInternal
	}

	saved, err := u.assessments.Upsert(ctx, a)
	if err != nil {
		u.logger.Printf("assessment_save job_id=%d stage=%s status=error err=%v", a.JobID, a.Stage, err)
		return domain.Assessment{}, ErrInternal
	}
	return saved, nil
}

func (u *Assessments) DeleteAssessment(ctx context.Context, jobID int64, stage domain.Stage) error {
	if jobID <= 0 {
		return ErrInvalidInput
	}
	err := u.assessments.Delete(ctx, jobID, stage)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return ErrNotFound
		}
		u.logger.Printf("assessment_delete job_id=%d stage=%s status=error err=%v", jobID, stage, err)
		return ErrInternal
	}
	return nil
}

// SubmitResponse validates the candidate's answers against the stored
// assessment and records the submission. Every violation is collected
// before the submission is rejected.
func (u *Assessments) SubmitResponse(ctx context.Context, candidateID, jobID int64, stage domain.Stage, responses domain.ResponseSet) (domain.AssessmentResponse, error) {
	a, c, err := u.loadForResponse(ctx, candidateID, jobID, stage)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}

	if violations := assessment.ValidateResponses(a, responses); len(violations) > 0 {
		u.logger.Printf("assessment_submit candidate_id=%d assessment_id=%d status=invalid violations=%d", candidateID, a.ID, len(violations))
		return domain.AssessmentResponse{}, &ValidationError{Violations: violations}
	}

	saved, err := u.assessments.SaveResponse(ctx, domain.AssessmentResponse{
		CandidateID:  c.ID,
		JobID:        jobID,
		Stage:        stage,
		AssessmentID: a.ID,
		Responses:    responses,
	})
	if err != nil {
		u.logger.Printf("assessment_submit candidate_id=%d assessment_id=%d status=error err=%v", candidateID, a.ID, err)
		return domain.AssessmentResponse{}, ErrInternal
	}
	u.logger.Printf("assessment_submit candidate_id=%d assessment_id=%d status=ok", candidateID, a.ID)
	return saved, nil
}

// SaveDraft stores in-progress answers without validating them; drafts
// may be incomplete or invalid until submission.
func (u *Assessments) SaveDraft(ctx context.Context, candidateID, jobID int64, stage domain.Stage, responses domain.ResponseSet) (domain.AssessmentResponse, error) {
	a, c, err := u.loadForResponse(ctx, candidateID, jobID, stage)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}

	saved, err := u.assessments.SaveDraft(ctx, domain.AssessmentResponse{
		CandidateID:  c.ID,
		JobID:        jobID,
		Stage:        stage,
		AssessmentID: a.ID,
		Responses:    responses,
	})
	if err != nil {
		u.logger.Printf("assessment_draft candidate_id=%d assessment_id=%d status=error err=%v", candidateID, a.ID, err)
		return domain.AssessmentResponse{}, ErrInternal
	}
	return saved, nil
}

func (u *Assessments) GetResponse(ctx context.Context, candidateID, jobID int64, stage domain.Stage) (domain.AssessmentResponse, error) {
	a, c, err := u.loadForResponse(ctx, candidateID, jobID, stage)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}

	resp, err := u.assessments.GetResponse(ctx, c.ID, a.ID)
	if err != nil {
		if errors.Is(err, repository.ErrResponseNotFound) {
			return domain.AssessmentResponse{}, ErrNotFound
		}
		u.logger.Printf("assessment_response candidate_id=%d assessment_id=%d status=error err=%v", candidateID, a.ID, err)
		return domain.AssessmentResponse{}, ErrInternal
	}
	return resp, nil
}

func (u *Assessments) loadForResponse(ctx context.Context, candidateID, jobID int64, stage domain.Stage) (domain.Assessment, domain.Candidate, error) {
	if candidateID <= 0 || jobID <= 0 {
		return domain.Assessment{}, domain.Candidate{}, ErrInvalidInput
	}
	if _, err := domain.ParseStage(string(stage)); err != nil {
		return domain.Assessment{}, domain.Candidate{}, ErrInvalidInput
	}

	c, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return domain.Assessment{}, domain.Candidate{}, ErrNotFound
		}
		u.logger.Printf("assessment_response candidate_id=%d status=error err=%v", candidateID, err)
		return domain.Assessment{}, domain.Candidate{}, ErrInternal
	}

	a, err := u.assessments.GetByJobStage(ctx, jobID, stage)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return domain.Assessment{}, domain.Candidate{}, ErrNotFound
		}
		u.logger.Printf("assessment_response job_id=%d stage=%s status=error err=%v", jobID, stage, err)
		return domain.Assessment{}, domain.Candidate{}, ErrInternal
	}
	return a, c, nil
}

func (u *Assessments) SaveBuilderState(ctx context.Context, jobID int64, state json.RawMessage) (domain.BuilderState, error) {
	if jobID <= 0 {
		return domain.BuilderState{}, ErrInvalidInput
	}
	if len(state) > 0 && !json.Valid(state) {
		return domain.BuilderState{}, ErrInvalidInput
	}

	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return domain.BuilderState{}, ErrNotFound
		}
		u.logger.Printf("builder_state job_id=%d status=error err=%v", jobID, err)
		return domain.BuilderState{}, ErrInternal
	}

	saved, err := u.assessments.SaveBuilderState(ctx, domain.BuilderState{JobID: jobID, State: state})
	if err != nil {
		u.logger.Printf("builder_state job_id=%d status=error err=%v", jobID, err)
		return domain.BuilderState{}, ErrInternal
	}
	return saved, nil
}

func (u *Assessments) GetBuilderState(ctx context.Context, jobID int64) (domain.BuilderState, error) {
	if jobID <= 0 {
		return domain.BuilderState{}, ErrInvalidInput
	}
	s, err := u.assessments.GetBuilderState(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrBuilderStateNotFound) {
			return domain.BuilderState{}, ErrNotFound
		}
		u.logger.Printf("builder_state job_id=%d status=error err=%v", jobID, err)
		return domain.BuilderState{}, ErrInternal
	}
	return s, nil
}
