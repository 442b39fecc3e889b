package repository

import (
	"context"

	"talentflow/internal/database"
	"talentflow/internal/domain"
)

type TimelineRepository interface {
	Append(ctx context.Context, e domain.TimelineEntry) (domain.TimelineEntry, error)
	AppendBatch(ctx context.Context, entries []domain.TimelineEntry) error
	ListForCandidate(ctx context.Context, candidateID int64) ([]domain.TimelineEntry, error)
}

type PostgresTimelineRepository struct {
	db database.DB
}

func NewPostgresTimelineRepository(db database.DB) *PostgresTimelineRepository {
	return &PostgresTimelineRepository{db: db}
}

func (r *PostgresTimelineRepository) Append(ctx context.Context, e domain.TimelineEntry) (domain.TimelineEntry, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO candidate_timeline (candidate_id, stage, occurred_at, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		e.CandidateID, e.Stage, e.OccurredAt, e.Notes,
	)
	if err := row.Scan(&e.ID); err != nil {
		return domain.TimelineEntry{}, err
	}
	return e, nil
}

// AppendBatch inserts the synthesized history for a candidate in one
// transaction so a seeded timeline is never half-written.
func (r *PostgresTimelineRepository) AppendBatch(ctx context.Context, entries []domain.TimelineEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_timeline (candidate_id, stage, occurred_at, notes)
			 VALUES ($1, $2, $3, $4)`,
			e.CandidateID, e.Stage, e.OccurredAt, e.Notes,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListForCandidate returns the candidate's timeline newest first.
func (r *PostgresTimelineRepository) ListForCandidate(ctx context.Context, candidateID int64) ([]domain.TimelineEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, stage, occurred_at, notes
		 FROM candidate_timeline
		 WHERE candidate_id = $1
		 ORDER BY occurred_at DESC, id DESC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TimelineEntry, 0)
	for rows.Next() {
		var e domain.TimelineEntry
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Stage, &e.OccurredAt, &e.Notes); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
