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

var ErrJobNotFound = errors.New("job not found")

const (
	JobSortOrder = "order"
	JobSortTitle = "title"
)

// JobFilter composes with AND semantics; zero values mean "no filter".
type JobFilter struct {
	Search   string
	Status   domain.JobStatus
	Tag      string
	Sort     string
	Page     int
	PageSize int
}

// JobPatch applies partial field updates; nil fields are left untouched.
type JobPatch struct {
	Title  *string
	Status *domain.JobStatus
	Tags   *[]string
}

type JobRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Job, error)
	List(ctx context.Context, f JobFilter) ([]domain.Job, int, error)
	Create(ctx context.Context, job domain.Job) (domain.Job, error)
	Update(ctx context.Context, id int64, patch JobPatch) (domain.Job, error)
	Reorder(ctx context.Context, id int64, toOrder int) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, slug, status, tags, display_order, created_at`

func scanJob(row database.Row) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Title, &j.Slug, &j.Status, &j.Tags, &j.DisplayOrder, &j.CreatedAt)
	return j, err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (domain.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, ErrJobNotFound
		}
		return domain.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]domain.Job, int, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE %s OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE %s))`, p, p))
	}
	if f.Status != "" {
		conds = append(conds, `status = `+arg(string(f.Status)))
	}
	if t := strings.TrimSpace(f.Tag); t != "" {
		conds = append(conds, arg(t)+` = ANY(tags)`)
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " AND ")
	}

	orderBy := ` ORDER BY display_order ASC, id ASC`
	if f.Sort == JobSortTitle {
		orderBy = ` ORDER BY title ASC, id ASC`
	}

	limit := arg(pageSize)
	offset := arg((page - 1) * pageSize)

	query := `SELECT ` + jobColumns + `, COUNT(*) OVER() AS total FROM jobs` +
		where + orderBy + ` LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Job, 0)
	total := 0
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Slug, &j.Status, &j.Tags, &j.DisplayOrder, &j.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if total == 0 && len(out) == 0 {
		// A fully out-of-range page returns no rows, so the window count
		// is lost; recount for correct pagination metadata.
		row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args[:len(args)-2]...)
		if err := row.Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	if job.Slug == "" {
		job.Slug = domain.Slugify(job.Title)
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, slug, status, tags, display_order)
		 VALUES ($1, $2, $3, $4, COALESCE((SELECT MAX(display_order) FROM jobs), 0) + 1)
		 RETURNING `+jobColumns,
		job.Title, job.Slug, job.Status, job.Tags,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, id int64, patch JobPatch) (domain.Job, error) {
	var sets []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Title != nil {
		sets = append(sets, `title = `+arg(*patch.Title))
		sets = append(sets, `slug = `+arg(domain.Slugify(*patch.Title)))
	}
	if patch.Status != nil {
		sets = append(sets, `status = `+arg(string(*patch.Status)))
	}
	if patch.Tags != nil {
		sets = append(sets, `tags = `+arg(*patch.Tags))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE jobs SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + arg(id) + ` RETURNING ` + jobColumns
	j, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, ErrJobNotFound
		}
		return domain.Job{}, err
	}
	return j, nil
}

// Reorder moves a job to a new display order and shifts the jobs between
// the old and new positions by one, all in a single transaction.
func (r *PostgresJobRepository) Reorder(ctx context.Context, id int64, toOrder int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var fromOrder int
	row := tx.QueryRow(ctx, `SELECT display_order FROM jobs WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&fromOrder); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrJobNotFound
		}
		return err
	}

	if fromOrder == toOrder {
		return tx.Commit(ctx)
	}

	if fromOrder < toOrder {
		// Moving down: the jobs in between shift up.
		_, err = tx.Exec(ctx,
			`UPDATE jobs SET display_order = display_order - 1
			 WHERE id <> $1 AND display_order > $2 AND display_order <= $3`,
			id, fromOrder, toOrder)
	} else {
		// Moving up: the jobs in between shift down.
		_, err = tx.Exec(ctx,
			`UPDATE jobs SET display_order = display_order + 1
			 WHERE id <> $1 AND display_order >= $2 AND display_order < $3`,
			id, toOrder, fromOrder)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE jobs SET display_order = $2 WHERE id = $1`, id, toOrder); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
