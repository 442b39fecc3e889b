package seeder

import (
	"context"
	"fmt"

	"talentflow/internal/database"
	"talentflow/internal/domain"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

type seedJob struct {
	Title  string
	Status domain.JobStatus
	Tags   []string
}

// seedJobs is the fixed board of 25 roles. Titles double as the role tags
// on technical bank questions, so they must match exactly.
var seedJobs = []seedJob{
	{Title: "Backend Engineer", Status: domain.JobStatusActive, Tags: []string{"go", "postgres", "remote"}},
	{Title: "Frontend Developer", Status: domain.JobStatusActive, Tags: []string{"react", "typescript"}},
	{Title: "Full Stack Developer", Status: domain.JobStatusActive, Tags: []string{"react", "node", "remote"}},
	{Title: "DevOps Engineer", Status: domain.JobStatusActive, Tags: []string{"kubernetes", "aws"}},
	{Title: "Data Engineer", Status: domain.JobStatusActive, Tags: []string{"python", "sql", "etl"}},
	{Title: "Data Scientist", Status: domain.JobStatusActive, Tags: []string{"python", "ml"}},
	{Title: "Machine Learning Engineer", Status: domain.JobStatusActive, Tags: []string{"python", "ml", "remote"}},
	{Title: "Mobile Developer", Status: domain.JobStatusActive, Tags: []string{"flutter", "ios", "android"}},
	{Title: "QA Engineer", Status: domain.JobStatusActive, Tags: []string{"testing", "automation"}},
	{Title: "Site Reliability Engineer", Status: domain.JobStatusActive, Tags: []string{"kubernetes", "on-call"}},
	{Title: "Security Engineer", Status: domain.JobStatusActive, Tags: []string{"security", "remote"}},
	{Title: "Platform Engineer", Status: domain.JobStatusActive, Tags: []string{"go", "kubernetes"}},
	{Title: "Engineering Manager", Status: domain.JobStatusActive, Tags: []string{"management", "leadership"}},
	{Title: "Product Manager", Status: domain.JobStatusActive, Tags: []string{"product", "roadmap"}},
	{Title: "Product Designer", Status: domain.JobStatusActive, Tags: []string{"figma", "ux"}},
	{Title: "UX Researcher", Status: domain.JobStatusActive, Tags: []string{"research", "ux"}},
	{Title: "Technical Writer", Status: domain.JobStatusActive, Tags: []string{"documentation", "remote"}},
	{Title: "Solutions Architect", Status: domain.JobStatusActive, Tags: []string{"architecture", "cloud"}},
	{Title: "Database Administrator", Status: domain.JobStatusArchived, Tags: []string{"postgres", "oracle"}},
	{Title: "Systems Analyst", Status: domain.JobStatusArchived, Tags: []string{"analysis"}},
	{Title: "Cloud Engineer", Status: domain.JobStatusActive, Tags: []string{"aws", "gcp"}},
	{Title: "Embedded Systems Engineer", Status: domain.JobStatusArchived, Tags: []string{"c", "firmware"}},
	{Title: "Business Analyst", Status: domain.JobStatusActive, Tags: []string{"analysis", "sql"}},
	{Title: "Scrum Master", Status: domain.JobStatusArchived, Tags: []string{"agile", "scrum"}},
	{Title: "Support Engineer", Status: domain.JobStatusActive, Tags: []string{"support", "remote"}},
}

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "slug", "status", "tags", "display_order"); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for i, j := range seedJobs {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (title, slug, status, tags, display_order) VALUES ($1, $2, $3, $4, $5)`,
			j.Title,
			domain.Slugify(j.Title),
			j.Status,
			j.Tags,
			i+1,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
