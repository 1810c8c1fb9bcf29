package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pptuition/tuition-backend/internal/model"
)

// QuizRepository handles quiz and question data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// List retrieves all quizzes, newest first. classLevel 0 means no filter.
func (r *QuizRepository) List(ctx context.Context, classLevel int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.title, q.class_level, q.difficulty,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id),
		        q.attempts, q.created_at, q.updated_at
		 FROM quizzes q
		 WHERE $1 = 0 OR q.class_level = $1
		 ORDER BY q.created_at DESC`, classLevel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.ClassLevel, &q.Difficulty,
			&q.QuestionCount, &q.Attempts, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// GetByID retrieves a single quiz.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	var q model.Quiz
	err := r.pool.QueryRow(ctx,
		`SELECT q.id, q.title, q.class_level, q.difficulty,
		        (SELECT COUNT(*) FROM questions WHERE quiz_id = q.id),
		        q.attempts, q.created_at, q.updated_at
		 FROM quizzes q WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.ClassLevel, &q.Difficulty,
		&q.QuestionCount, &q.Attempts, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions retrieves a quiz's questions in order. Options are stored
// as a JSONB array and must round-trip exactly.
func (r *QuizRepository) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, question_text, options, correct_option, explanation, order_num
		 FROM questions WHERE quiz_id = $1
		 ORDER BY order_num`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &rawOptions,
			&q.CorrectOption, &q.Explanation, &q.OrderNum); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, class_level, difficulty)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		q.Title, q.ClassLevel, q.Difficulty,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update modifies quiz metadata.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET title = $2, class_level = $3, difficulty = $4, updated_at = NOW()
		 WHERE id = $1`,
		q.ID, q.Title, q.ClassLevel, q.Difficulty,
	)
	return err
}

// Delete removes a quiz and its questions (cascade).
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}

// ReplaceQuestions swaps a quiz's entire question list inside one
// transaction so readers never observe a half-replaced quiz.
func (r *QuizRepository) ReplaceQuestions(ctx context.Context, quizID uuid.UUID, questions []model.Question) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE quiz_id = $1`, quizID); err != nil {
			return err
		}
		for i := range questions {
			rawOptions, err := json.Marshal(questions[i].Options)
			if err != nil {
				return err
			}
			err = tx.QueryRow(ctx,
				`INSERT INTO questions (quiz_id, question_text, options, correct_option, explanation, order_num)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id`,
				quizID, questions[i].Text, rawOptions,
				questions[i].CorrectOption, questions[i].Explanation, i,
			).Scan(&questions[i].ID)
			if err != nil {
				return err
			}
			questions[i].QuizID = quizID
			questions[i].OrderNum = i
		}
		_, err := tx.Exec(ctx, `UPDATE quizzes SET updated_at = NOW() WHERE id = $1`, quizID)
		return err
	})
}

// IncrementAttempts bumps the attempt counter when a live player finishes.
func (r *QuizRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE quizzes SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}
