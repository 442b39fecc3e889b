package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talentflow/internal/database"
	"talentflow/internal/domain"

	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateFilter composes with AND semantics; zero values mean "no
// filter".
type CandidateFilter struct {
	Search   string
	Stage    domain.Stage
	JobID    int64
	Page     int
	PageSize int
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Candidate, error)
	List(ctx context.Context, f CandidateFilter) ([]domain.Candidate, int, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.Candidate, error)
	Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
	UpdateStage(ctx context.Context, id int64, stage domain.Stage) error
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, name, email, stage, job_id, created_at`

func scanCandidate(row database.Row) (domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Stage, &c.JobID, &c.CreatedAt)
	return c, err
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id int64) (domain.Candidate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Candidate{}, ErrCandidateNotFound
		}
		return domain.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, f CandidateFilter) ([]domain.Candidate, int, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf(`(name ILIKE %s OR email ILIKE %s)`, p, p))
	}
	if f.Stage != "" {
		conds = append(conds, `stage = `+arg(string(f.Stage)))
	}
	if f.JobID > 0 {
		conds = append(conds, `job_id = `+arg(f.JobID))
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " AND ")
	}

	limit := arg(pageSize)
	offset := arg((page - 1) * pageSize)

	query := `SELECT ` + candidateColumns + `, COUNT(*) OVER() AS total FROM candidates` +
		where + ` ORDER BY name ASC, id ASC LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Candidate, 0)
	total := 0
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Stage, &c.JobID, &c.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if total == 0 && len(out) == 0 {
		row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args[:len(args)-2]...)
		if err := row.Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *PostgresCandidateRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE job_id = $1 ORDER BY name ASC, id ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Candidate, 0)
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Stage, &c.JobID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	if c.Stage == "" {
		c.Stage = domain.StageApplied
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidates (name, email, stage, job_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+candidateColumns,
		c.Name, c.Email, c.Stage, c.JobID,
	)
	return scanCandidate(row)
}

func (r *PostgresCandidateRepository) UpdateStage(ctx context.Context, id int64, stage domain.Stage) error {
	n, err := r.db.Exec(ctx, `UPDATE candidates SET stage = $2 WHERE id = $1`, id, stage)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}
