package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pptuition/tuition-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// List retrieves all students ordered by class then name.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, class_level, COALESCE(email, ''), COALESCE(phone, ''),
		        password_hash, quizzes_taken, avg_score, created_at
		 FROM students
		 ORDER BY class_level, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.ClassLevel, &s.Email, &s.Phone,
			&s.PasswordHash, &s.QuizzesTaken, &s.AvgScore, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetByID retrieves a single student.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, class_level, COALESCE(email, ''), COALESCE(phone, ''),
		        password_hash, quizzes_taken, avg_score, created_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.ClassLevel, &s.Email, &s.Phone,
		&s.PasswordHash, &s.QuizzesTaken, &s.AvgScore, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByNameAndClass retrieves a student by the login form's identity pair.
func (r *StudentRepository) GetByNameAndClass(ctx context.Context, name string, classLevel int) (*model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, class_level, COALESCE(email, ''), COALESCE(phone, ''),
		        password_hash, quizzes_taken, avg_score, created_at
		 FROM students WHERE LOWER(name) = LOWER($1) AND class_level = $2`,
		name, classLevel,
	).Scan(&s.ID, &s.Name, &s.ClassLevel, &s.Email, &s.Phone,
		&s.PasswordHash, &s.QuizzesTaken, &s.AvgScore, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (name, class_level, email, phone, password_hash)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		 RETURNING id, created_at`,
		s.Name, s.ClassLevel, s.Email, s.Phone, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt)
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET name = $2, class_level = $3, email = NULLIF($4, ''),
		     phone = NULLIF($5, ''), password_hash = $6
		 WHERE id = $1`,
		s.ID, s.Name, s.ClassLevel, s.Email, s.Phone, s.PasswordHash,
	)
	return err
}

// Delete removes a student.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

// RecordAttempt folds a finished quiz attempt into the student's rolling
// stats, matched by display name within the class. Live players are not
// required to be registered, so a miss is not an error.
func (r *StudentRepository) RecordAttempt(ctx context.Context, name string, percentage int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET avg_score = (avg_score * quizzes_taken + $2) / (quizzes_taken + 1),
		     quizzes_taken = quizzes_taken + 1
		 WHERE LOWER(name) = LOWER($1)`,
		name, percentage,
	)
	return err
}
