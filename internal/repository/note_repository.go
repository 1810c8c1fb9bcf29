package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pptuition/tuition-backend/internal/model"
)

// NoteRepository handles study note data access.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// List retrieves notes, newest first. classLevel 0 means no filter.
func (r *NoteRepository) List(ctx context.Context, classLevel int) ([]model.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, class_level, subject, created_at
		 FROM notes
		 WHERE $1 = 0 OR class_level = $1
		 ORDER BY created_at DESC`, classLevel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ClassLevel, &n.Subject, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetByID retrieves a single note.
func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var n model.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, class_level, subject, created_at
		 FROM notes WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.ClassLevel, &n.Subject, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, n *model.Note) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notes (title, content, class_level, subject)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.Title, n.Content, n.ClassLevel, n.Subject,
	).Scan(&n.ID, &n.CreatedAt)
}

// Update modifies an existing note.
func (r *NoteRepository) Update(ctx context.Context, n *model.Note) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $2, content = $3, class_level = $4, subject = $5
		 WHERE id = $1`,
		n.ID, n.Title, n.Content, n.ClassLevel, n.Subject,
	)
	return err
}

// Delete removes a note.
func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}
