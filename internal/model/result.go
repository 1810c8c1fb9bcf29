package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is a completed attempt, recorded when a live player finishes
// (by answering the last question or by running out of time).
type QuizResult struct {
	ID               uuid.UUID `json:"id"`
	QuizID           uuid.UUID `json:"quiz_id"`
	StudentName      string    `json:"student_name"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       int       `json:"percentage"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CompletedAt      time.Time `json:"completed_at"`
}
