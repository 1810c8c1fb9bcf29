package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LiveSession is the single shared record a teacher publishes when a live
// quiz starts. Students locate it by join code; the absolute EndTime is the
// only source of truth for remaining time on every client.
type LiveSession struct {
	ID         uuid.UUID  `json:"id"` // quiz ID the session was started from
	Title      string     `json:"title"`
	ClassLevel int        `json:"class_level"`
	JoinCode   string     `json:"join_code"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Questions  []Question `json:"questions"`
}

// Expired reports whether the session has ended relative to now.
// Presence in the store does not imply the session is still running —
// readers must always re-check this.
func (s *LiveSession) Expired(now time.Time) bool {
	return !s.EndTime.After(now)
}

// RemainingSeconds returns the whole seconds left until EndTime, never
// negative. A student joining late gets correspondingly less time.
func (s *LiveSession) RemainingSeconds(now time.Time) int {
	remaining := s.EndTime.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}

// AnswerRecord is one student's recorded choice for a single question.
// Records are append-only: the first selection is authoritative.
type AnswerRecord struct {
	QuestionIndex  int  `json:"question_index"`
	SelectedOption int  `json:"selected_option"`
	Correct        bool `json:"correct"`
}

// StudentResult is derived from the answer sequence once a player finishes.
// Percentage is computed over the full question count, so questions left
// unanswered at expiry count against the score.
type StudentResult struct {
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`
	Percentage     int `json:"percentage"`
}

// ComputeResult scores an answer sequence against the total question count.
func ComputeResult(answers []AnswerRecord, totalQuestions int) StudentResult {
	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	pct := 0
	if totalQuestions > 0 {
		pct = int(math.Round(100 * float64(correct) / float64(totalQuestions)))
	}
	return StudentResult{
		CorrectCount:   correct,
		TotalQuestions: totalQuestions,
		Percentage:     pct,
	}
}

// StartLiveRequest is the payload for a teacher starting a live session.
type StartLiveRequest struct {
	QuizID          uuid.UUID `json:"quiz_id" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=480"`
}

// JoinLiveRequest is the payload for a student joining a live session.
// Emptiness is validated by the state machine, not the binder, so the
// error taxonomy (EmptyName/EmptyCode) stays in one place.
type JoinLiveRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AnswerRequest is the payload for selecting an option.
type AnswerRequest struct {
	Option *int `json:"option" binding:"required,min=0,max=3"`
}
