package model

import (
	"testing"
	"time"
)

func TestLiveSessionExpired(t *testing.T) {
	now := time.Now()
	s := LiveSession{EndTime: now.Add(time.Minute)}

	if s.Expired(now) {
		t.Error("session with a minute left reported expired")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Error("session at its end time reported running")
	}
	if !s.Expired(now.Add(2 * time.Minute)) {
		t.Error("session past its end time reported running")
	}
}

func TestRemainingSeconds(t *testing.T) {
	now := time.Now()
	s := LiveSession{EndTime: now.Add(90 * time.Second)}

	if got := s.RemainingSeconds(now); got != 90 {
		t.Errorf("RemainingSeconds = %d, want 90", got)
	}
	if got := s.RemainingSeconds(now.Add(time.Minute)); got != 30 {
		t.Errorf("late read = %d, want 30", got)
	}
	if got := s.RemainingSeconds(now.Add(time.Hour)); got != 0 {
		t.Errorf("past end = %d, want 0", got)
	}
	// Partial seconds floor, never round up.
	if got := s.RemainingSeconds(now.Add(89*time.Second + 500*time.Millisecond)); got != 0 {
		t.Errorf("sub-second remainder = %d, want 0", got)
	}
}

func TestComputeResultDenominatorIsTotalQuestions(t *testing.T) {
	answers := []AnswerRecord{
		{QuestionIndex: 0, SelectedOption: 1, Correct: true},
		{QuestionIndex: 1, SelectedOption: 2, Correct: false},
	}

	// Five questions total but only two answered: score is out of five.
	result := ComputeResult(answers, 5)
	if result.CorrectCount != 1 {
		t.Errorf("correct = %d, want 1", result.CorrectCount)
	}
	if result.TotalQuestions != 5 {
		t.Errorf("total = %d, want 5", result.TotalQuestions)
	}
	if result.Percentage != 20 {
		t.Errorf("percentage = %d, want 20", result.Percentage)
	}
}

func TestComputeResultRounding(t *testing.T) {
	answers := []AnswerRecord{
		{Correct: true},
		{Correct: true},
	}
	if got := ComputeResult(answers, 3).Percentage; got != 67 {
		t.Errorf("2/3 = %d%%, want 67", got)
	}
	if got := ComputeResult(answers[:1], 3).Percentage; got != 33 {
		t.Errorf("1/3 = %d%%, want 33", got)
	}
	if got := ComputeResult(nil, 0).Percentage; got != 0 {
		t.Errorf("0/0 = %d%%, want 0", got)
	}
}
