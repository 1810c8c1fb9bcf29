package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject enumerates the science subjects notes are filed under.
type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectBiology   Subject = "Biology"
)

// Note is a study note the teacher publishes for a class level.
type Note struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ClassLevel int       `json:"class_level"`
	Subject    Subject   `json:"subject"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateNoteRequest is the payload for publishing a note.
type CreateNoteRequest struct {
	Title      string `json:"title" binding:"required,min=3,max=255"`
	Content    string `json:"content" binding:"required,min=1"`
	ClassLevel int    `json:"class_level" binding:"required,min=6,max=12"`
	Subject    string `json:"subject" binding:"required,oneof=Physics Chemistry Biology"`
}

// UpdateNoteRequest is the payload for editing a note.
type UpdateNoteRequest struct {
	Title      string `json:"title" binding:"omitempty,min=3,max=255"`
	Content    string `json:"content" binding:"omitempty,min=1"`
	ClassLevel int    `json:"class_level" binding:"omitempty,min=6,max=12"`
	Subject    string `json:"subject" binding:"omitempty,oneof=Physics Chemistry Biology"`
}
