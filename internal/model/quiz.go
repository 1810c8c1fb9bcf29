package model

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty enumerates quiz difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Quiz is an authored set of multiple-choice questions for one class level.
type Quiz struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	ClassLevel    int        `json:"class_level"`
	Difficulty    Difficulty `json:"difficulty"`
	QuestionCount int        `json:"question_count"`
	Attempts      int        `json:"attempts"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Question is a single four-option multiple-choice question. Immutable once
// part of a live session.
type Question struct {
	ID            uuid.UUID `json:"id,omitempty"`
	QuizID        uuid.UUID `json:"quiz_id,omitempty"`
	Text          string    `json:"text"`
	Options       []string  `json:"options"`
	CorrectOption int       `json:"correct_option"` // 0-based index into Options
	Explanation   string    `json:"explanation"`
	OrderNum      int       `json:"order_num"`
}

// CreateQuizRequest is the payload for creating a quiz.
type CreateQuizRequest struct {
	Title      string `json:"title" binding:"required,min=3,max=255"`
	ClassLevel int    `json:"class_level" binding:"required,min=6,max=12"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
}

// UpdateQuizRequest is the payload for updating quiz metadata.
type UpdateQuizRequest struct {
	Title      string `json:"title" binding:"omitempty,min=3,max=255"`
	ClassLevel int    `json:"class_level" binding:"omitempty,min=6,max=12"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
}

// QuestionPayload is the payload for one question in a replace request.
type QuestionPayload struct {
	Text          string   `json:"text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectOption int      `json:"correct_option" binding:"min=0,max=3"`
	Explanation   string   `json:"explanation" binding:"max=2000"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing a quiz's questions.
type ReplaceQuestionsRequest struct {
	Questions []QuestionPayload `json:"questions" binding:"required,min=1,dive"`
}

// QuizAttemptRequest is the payload for submitting a self-paced attempt.
// Answers is index-aligned with the quiz's question order; -1 marks a
// question the student skipped.
type QuizAttemptRequest struct {
	Answers          []int `json:"answers" binding:"required,min=1,dive,min=-1,max=3"`
	TimeTakenSeconds int   `json:"time_taken_seconds" binding:"omitempty,min=0"`
}
