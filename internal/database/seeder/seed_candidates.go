package seeder

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"talentflow/internal/database"
	"talentflow/internal/domain"
	"talentflow/internal/timeline"
)

const (
	candidateCount   = 1000
	candidateWorkers = 8
)

// CandidatesSeeder inserts a fixed population of candidates with
// synthesized stage histories. Individual insert failures are logged and
// skipped so one bad row never aborts the whole run.
type CandidatesSeeder struct {
	Logger *log.Logger
}

func (CandidatesSeeder) Name() string { return "candidates" }

var firstNames = []string{
	"Aisha", "Budi", "Carlos", "Diana", "Elena", "Farhan", "Grace", "Hana",
	"Ivan", "Jasmine", "Kofi", "Lena", "Marcus", "Nadia", "Omar", "Priya",
	"Quinn", "Rafael", "Sofia", "Tariq", "Uma", "Viktor", "Wen", "Ximena",
	"Yusuf", "Zara", "Andre", "Bella", "Chen", "Dmitri",
}

var lastNames = []string{
	"Anderson", "Brown", "Chen", "Diaz", "Evans", "Fischer", "Garcia",
	"Hassan", "Ibrahim", "Johnson", "Kim", "Lopez", "Martinez", "Nguyen",
	"Okafor", "Patel", "Quintero", "Rossi", "Santos", "Tanaka", "Umar",
	"Volkov", "Wang", "Xu", "Yamamoto", "Zhang", "Ali", "Becker", "Costa", "Dubois",
}

// stageWeights skews the population toward early stages the way a real
// funnel does.
var stageWeights = []struct {
	Stage  domain.Stage
	Weight int
}{
	{domain.StageApplied, 30},
	{domain.StageScreen, 20},
	{domain.StageTech, 15},
	{domain.StageOffer, 10},
	{domain.StageHired, 10},
	{domain.StageRejected, 15},
}

func pickStage(rnd *rand.Rand) domain.Stage {
	total := 0
	for _, w := range stageWeights {
		total += w.Weight
	}
	n := rnd.IntN(total)
	for _, w := range stageWeights {
		n -= w.Weight
		if n < 0 {
			return w.Stage
		}
	}
	return domain.StageApplied
}

func (s CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "name", "email", "stage", "job_id"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "candidate_timeline", "id", "candidate_id", "stage", "occurred_at", "notes"); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	jobIDs, err := activeJobIDs(ctx, db)
	if err != nil {
		return err
	}
	if len(jobIDs) == 0 {
		return fmt.Errorf("no jobs to attach candidates to")
	}

	// Fixed seed keeps reruns against a wiped database reproducible.
	rnd := rand.New(rand.NewPCG(42, 1337))
	builder := timeline.NewBuilder(rnd)
	now := time.Now().UTC()

	pool := NewWorkerPool(candidateWorkers, candidateCount)
	results := pool.Run(ctx)

	for i := 0; i < candidateCount; i++ {
		first := firstNames[rnd.IntN(len(firstNames))]
		last := lastNames[rnd.IntN(len(lastNames))]
		name := first + " " + last
		email := fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i)
		jobID := jobIDs[rnd.IntN(len(jobIDs))]
		stage := pickStage(rnd)
		createdAt := now.AddDate(0, 0, -rnd.IntN(90)).Add(-time.Duration(rnd.IntN(24)) * time.Hour)

		// Entries are synthesized up front; the builder's randomness is
		// not goroutine safe.
		entries := builder.Synthesize(0, stage, createdAt)

		pool.Submit(func(ctx context.Context) error {
			return insertCandidate(ctx, db, name, email, stage, jobID, createdAt, entries)
		})
	}
	pool.Close()

	failed := 0
	for r := range results {
		if r.Err != nil {
			failed++
			if s.Logger != nil {
				s.Logger.Printf("seed candidates: insert failed: %v", r.Err)
			}
		}
	}
	if s.Logger != nil {
		s.Logger.Printf("seed candidates: inserted=%d failed=%d", candidateCount-failed, failed)
	}
	return nil
}

func activeJobIDs(ctx context.Context, db database.DB) ([]int64, error) {
	rows, err := db.Query(ctx, `SELECT id FROM jobs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func insertCandidate(ctx context.Context, db database.DB, name, email string, stage domain.Stage, jobID int64, createdAt time.Time, entries []domain.TimelineEntry) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var candidateID int64
	row := tx.QueryRow(
		ctx,
		`INSERT INTO candidates (name, email, stage, job_id, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, email, stage, jobID, createdAt,
	)
	if err := row.Scan(&candidateID); err != nil {
		return err
	}

	for _, e := range entries {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO candidate_timeline (candidate_id, stage, occurred_at, notes) VALUES ($1, $2, $3, $4)`,
			candidateID, e.Stage, e.OccurredAt, e.Notes,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
