package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/repository"
)

// NoteService handles study note publishing.
type NoteService struct {
	noteRepo *repository.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo *repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// List returns notes, optionally filtered by class level (0 = all).
func (s *NoteService) List(ctx context.Context, classLevel int) ([]model.Note, error) {
	return s.noteRepo.List(ctx, classLevel)
}

// Create publishes a note.
func (s *NoteService) Create(ctx context.Context, req model.CreateNoteRequest) (*model.Note, error) {
	note := &model.Note{
		Title:      req.Title,
		Content:    req.Content,
		ClassLevel: req.ClassLevel,
		Subject:    model.Subject(req.Subject),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update edits a note; zero-valued fields are left unchanged.
func (s *NoteService) Update(ctx context.Context, id uuid.UUID, req model.UpdateNoteRequest) (*model.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = req.Content
	}
	if req.ClassLevel != 0 {
		note.ClassLevel = req.ClassLevel
	}
	if req.Subject != "" {
		note.Subject = model.Subject(req.Subject)
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.noteRepo.Delete(ctx, id)
}
