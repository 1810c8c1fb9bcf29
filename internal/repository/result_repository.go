package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pptuition/tuition-backend/internal/model"
)

// ResultRepository handles quiz result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// List retrieves results, newest first, optionally filtered by quiz.
func (r *ResultRepository) List(ctx context.Context, quizID *uuid.UUID) ([]model.QuizResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, student_name, score, total_questions, percentage,
		        time_taken_seconds, completed_at
		 FROM quiz_results
		 WHERE $1::uuid IS NULL OR quiz_id = $1
		 ORDER BY completed_at DESC`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		var res model.QuizResult
		if err := rows.Scan(&res.ID, &res.QuizID, &res.StudentName, &res.Score,
			&res.TotalQuestions, &res.Percentage, &res.TimeTakenSeconds, &res.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Create inserts a finished attempt.
func (r *ResultRepository) Create(ctx context.Context, res *model.QuizResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_results (quiz_id, student_name, score, total_questions, percentage, time_taken_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, completed_at`,
		res.QuizID, res.StudentName, res.Score, res.TotalQuestions,
		res.Percentage, res.TimeTakenSeconds,
	).Scan(&res.ID, &res.CompletedAt)
}
