package repository

import (
	"context"
	"encoding/json"
	"errors"

	"talentflow/internal/database"
	"talentflow/internal/domain"

	"github.com/jackc/pgx/v5"
)

var (
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrResponseNotFound     = errors.New("assessment response not found")
	ErrBuilderStateNotFound = errors.New("builder state not found")
)

type AssessmentRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Assessment, error)
	GetByJobStage(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.Assessment, error)
	Upsert(ctx context.Context, a domain.Assessment) (domain.Assessment, error)
	Delete(ctx context.Context, jobID int64, stage domain.Stage) error

	SaveDraft(ctx context.Context, resp domain.AssessmentResponse) (domain.AssessmentResponse, error)
	SaveResponse(ctx context.Context, resp domain.AssessmentResponse) (domain.AssessmentResponse, error)
	GetResponse(ctx context.Context, candidateID, assessmentID int64) (domain.AssessmentResponse, error)

	SaveBuilderState(ctx context.Context, s domain.BuilderState) (domain.BuilderState, error)
	GetBuilderState(ctx context.Context, jobID int64) (domain.BuilderState, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

const assessmentColumns = `id, job_id, stage, title, sections, created_at, updated_at`

func scanAssessment(row database.Row) (domain.Assessment, error) {
	var a domain.Assessment
	var sections []byte
	if err := row.Scan(&a.ID, &a.JobID, &a.Stage, &a.Title, &sections, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Assessment{}, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &a.Sections); err != nil {
			return domain.Assessment{}, err
		}
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) GetByID(ctx context.Context, id int64) (domain.Assessment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Assessment{}, ErrAssessmentNotFound
		}
		return domain.Assessment{}, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) GetByJobStage(ctx context.Context, jobID int64, stage domain.Stage) (domain.Assessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE job_id = $1 AND stage = $2`, jobID, stage)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Assessment{}, ErrAssessmentNotFound
		}
		return domain.Assessment{}, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Assessment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE job_id = $1 ORDER BY stage ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Assessment, 0)
	for rows.Next() {
		var a domain.Assessment
		var sections []byte
		if err := rows.Scan(&a.ID, &a.JobID, &a.Stage, &a.Title, &sections, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if len(sections) > 0 {
			if err := json.Unmarshal(sections, &a.Sections); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert writes the assessment for (job, stage), replacing any existing
// one for the same slot.
func (r *PostgresAssessmentRepository) Upsert(ctx context.Context, a domain.Assessment) (domain.Assessment, error) {
	sections, err := json.Marshal(a.Sections)
	if err != nil {
		return domain.Assessment{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO assessments (job_id, stage, title, sections)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (job_id, stage)
		 DO UPDATE SET title = EXCLUDED.title, sections = EXCLUDED.sections, updated_at = now()
		 RETURNING `+assessmentColumns,
		a.JobID, a.Stage, a.Title, sections,
	)
	return scanAssessment(row)
}

func (r *PostgresAssessmentRepository) Delete(ctx context.Context, jobID int64, stage domain.Stage) error {
	n, err := r.db.Exec(ctx, `DELETE FROM assessments WHERE job_id = $1 AND stage = $2`, jobID, stage)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

const responseColumns = `id, candidate_id, job_id, stage, assessment_id, responses, submitted_at, created_at, updated_at`

func scanResponse(row database.Row) (domain.AssessmentResponse, error) {
	var resp domain.AssessmentResponse
	var body []byte
	err := row.Scan(&resp.ID, &resp.CandidateID, &resp.JobID, &resp.Stage, &resp.AssessmentID,
		&body, &resp.SubmittedAt, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp.Responses); err != nil {
			return domain.AssessmentResponse{}, err
		}
	}
	return resp, nil
}

// SaveDraft stores or replaces the candidate's in-progress answers
// without marking them submitted.
func (r *PostgresAssessmentRepository) SaveDraft(ctx context.Context, resp domain.AssessmentResponse) (domain.AssessmentResponse, error) {
	return r.saveResponse(ctx, resp, false)
}

// SaveResponse stores the candidate's answers and stamps submitted_at.
func (r *PostgresAssessmentRepository) SaveResponse(ctx context.Context, resp domain.AssessmentResponse) (domain.AssessmentResponse, error) {
	return r.saveResponse(ctx, resp, true)
}

func (r *PostgresAssessmentRepository) saveResponse(ctx context.Context, resp domain.AssessmentResponse, submit bool) (domain.AssessmentResponse, error) {
	body, err := json.Marshal(resp.Responses)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var existingID int64
	row := tx.QueryRow(ctx,
		`SELECT id FROM assessment_responses WHERE candidate_id = $1 AND assessment_id = $2 FOR UPDATE`,
		resp.CandidateID, resp.AssessmentID)
	err = row.Scan(&existingID)
	switch {
	case err == nil:
		submittedExpr := `submitted_at`
		if submit {
			submittedExpr = `now()`
		}
		row = tx.QueryRow(ctx,
			`UPDATE assessment_responses
			 SET responses = $2, submitted_at = `+submittedExpr+`, updated_at = now()
			 WHERE id = $1
			 RETURNING `+responseColumns,
			existingID, body)
	case errors.Is(err, pgx.ErrNoRows):
		submittedExpr := `NULL`
		if submit {
			submittedExpr = `now()`
		}
		row = tx.QueryRow(ctx,
			`INSERT INTO assessment_responses (candidate_id, job_id, stage, assessment_id, responses, submitted_at)
			 VALUES ($1, $2, $3, $4, $5, `+submittedExpr+`)
			 RETURNING `+responseColumns,
			resp.CandidateID, resp.JobID, resp.Stage, resp.AssessmentID, body)
	default:
		return domain.AssessmentResponse{}, err
	}

	saved, err := scanResponse(row)
	if err != nil {
		return domain.AssessmentResponse{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.AssessmentResponse{}, err
	}
	return saved, nil
}

func (r *PostgresAssessmentRepository) GetResponse(ctx context.Context, candidateID, assessmentID int64) (domain.AssessmentResponse, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+responseColumns+` FROM assessment_responses WHERE candidate_id = $1 AND assessment_id = $2`,
		candidateID, assessmentID)
	resp, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AssessmentResponse{}, ErrResponseNotFound
		}
		return domain.AssessmentResponse{}, err
	}
	return resp, nil
}

func (r *PostgresAssessmentRepository) SaveBuilderState(ctx context.Context, s domain.BuilderState) (domain.BuilderState, error) {
	state := s.State
	if len(state) == 0 {
		state = json.RawMessage(`{}`)
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO builder_states (job_id, state, last_modified)
		 VALUES ($1, $2, now())
		 ON CONFLICT (job_id)
		 DO UPDATE SET state = EXCLUDED.state, last_modified = now()
		 RETURNING id, job_id, state, last_modified`,
		s.JobID, []byte(state),
	)
	var saved domain.BuilderState
	var raw []byte
	if err := row.Scan(&saved.ID, &saved.JobID, &raw, &saved.LastModified); err != nil {
		return domain.BuilderState{}, err
	}
	saved.State = json.RawMessage(raw)
	return saved, nil
}

func (r *PostgresAssessmentRepository) GetBuilderState(ctx context.Context, jobID int64) (domain.BuilderState, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_id, state, last_modified FROM builder_states WHERE job_id = $1`, jobID)
	var s domain.BuilderState
	var raw []byte
	if err := row.Scan(&s.ID, &s.JobID, &raw, &s.LastModified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BuilderState{}, ErrBuilderStateNotFound
		}
		return domain.BuilderState{}, err
	}
	s.State = json.RawMessage(raw)
	return s, nil
}
