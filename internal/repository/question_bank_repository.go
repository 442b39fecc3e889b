package repository

import (
	"context"

	"talentflow/internal/database"
	"talentflow/internal/domain"
)

type QuestionBankRepository interface {
	ListByCategory(ctx context.Context, category domain.QuestionCategory) ([]domain.BankQuestion, error)
	Insert(ctx context.Context, q domain.BankQuestion) (domain.BankQuestion, error)
	Count(ctx context.Context) (int, error)
}

type PostgresQuestionBankRepository struct {
	db database.DB
}

func NewPostgresQuestionBankRepository(db database.DB) *PostgresQuestionBankRepository {
	return &PostgresQuestionBankRepository{db: db}
}

// ListByCategory orders by id so the deterministic shuffle always sees
// the pool in the same sequence.
func (r *PostgresQuestionBankRepository) ListByCategory(ctx context.Context, category domain.QuestionCategory) ([]domain.BankQuestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, qtype, category, role_tags, difficulty, question, options, correct_answer
		 FROM question_bank
		 WHERE category = $1
		 ORDER BY id ASC`,
		string(category),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BankQuestion, 0)
	for rows.Next() {
		var q domain.BankQuestion
		if err := rows.Scan(&q.ID, &q.Type, &q.Category, &q.RoleTags, &q.Difficulty, &q.Question, &q.Options, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresQuestionBankRepository) Insert(ctx context.Context, q domain.BankQuestion) (domain.BankQuestion, error) {
	if q.RoleTags == nil {
		q.RoleTags = []string{}
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	if q.CorrectAnswer == nil {
		q.CorrectAnswer = []string{}
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO question_bank (qtype, category, role_tags, difficulty, question, options, correct_answer)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		q.Type, q.Category, q.RoleTags, q.Difficulty, q.Question, q.Options, q.CorrectAnswer,
	)
	if err := row.Scan(&q.ID); err != nil {
		return domain.BankQuestion{}, err
	}
	return q, nil
}

func (r *PostgresQuestionBankRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM question_bank`).Scan(&n)
	return n, err
}
