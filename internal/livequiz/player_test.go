package livequiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/store"
)

func seedSession(t *testing.T, st store.SessionStore, now time.Time, dur time.Duration, questions []model.Question) *model.LiveSession {
	t.Helper()
	session := &model.LiveSession{
		ID:         uuid.New(),
		Title:      "Chemical Reactions",
		ClassLevel: 10,
		JoinCode:   "ABC123",
		StartTime:  now,
		EndTime:    now.Add(dur),
		Questions:  questions,
	}
	if err := st.Put(context.Background(), session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func gradedQuestions() []model.Question {
	return []model.Question{
		{Text: "q1", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0},
		{Text: "q2", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1},
		{Text: "q3", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2},
	}
}

func newTestPlayer(st store.SessionStore, now time.Time, onFinish func(FinishSummary)) *Player {
	p := NewPlayer(st, func() time.Time { return now }, onFinish)
	p.tickEvery = testTick
	return p
}

func TestJoinValidation(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "  ", "ABC123"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: got %v, want ErrEmptyName", err)
	}
	if err := p.Join(context.Background(), "Asha", ""); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("blank code: got %v, want ErrEmptyCode", err)
	}

	// No session published at all.
	if err := p.Join(context.Background(), "Asha", "ABC123"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("no session: got %v, want ErrInvalidCode", err)
	}

	seedSession(t, st, now, time.Hour, gradedQuestions())
	if err := p.Join(context.Background(), "Asha", "XYZ999"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("wrong code: got %v, want ErrInvalidCode", err)
	}

	if p.State() != PlayerAwaitingJoin {
		t.Errorf("failed joins moved state to %s", p.State())
	}
}

func TestJoinCodeCaseInsensitive(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "Asha", "abc123"); err != nil {
		t.Fatalf("lowercase code rejected: %v", err)
	}
	if p.State() != PlayerInProgress {
		t.Fatalf("state = %s, want %s", p.State(), PlayerInProgress)
	}
}

func TestJoinExpiredSessionRejected(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()

	// Record still present, but past its end time.
	seedSession(t, st, now.Add(-2*time.Hour), time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "Asha", "ABC123"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("got %v, want ErrSessionExpired", err)
	}
}

func TestLateJoinerGetsRemainingTimeOnly(t *testing.T) {
	st := store.NewMemoryStore()
	start := time.Now()
	seedSession(t, st, start, 10*time.Minute, gradedQuestions())

	// Joining 4 minutes in leaves 6 minutes on the clock.
	p := newTestPlayer(st, start.Add(4*time.Minute), nil)
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	rem := p.Remaining()
	if rem > 6*60 || rem < 6*60-1 {
		t.Errorf("Remaining() = %d, want about %d", rem, 6*60)
	}
}

func TestJoinTwiceRejected(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := p.Join(context.Background(), "Asha", "ABC123"); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("got %v, want ErrAlreadyJoined", err)
	}
}

func TestFirstAnswerIsAuthoritative(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	first, err := p.SelectAnswer(3)
	if err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if first.Correct {
		t.Error("option 3 graded correct, want incorrect")
	}

	// Changing the mind afterwards must not change the record.
	second, err := p.SelectAnswer(0)
	if err != nil {
		t.Fatalf("repeat SelectAnswer: %v", err)
	}
	if second != first {
		t.Errorf("repeat selection returned %+v, want original %+v", second, first)
	}
	if got := p.Answers(); len(got) != 1 {
		t.Errorf("recorded %d answers, want 1", len(got))
	}
}

func TestSelectAnswerValidation(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if _, err := p.SelectAnswer(0); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("before join: got %v, want ErrNotInProgress", err)
	}

	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := p.SelectAnswer(-1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option -1: got %v, want ErrInvalidOption", err)
	}
	if _, err := p.SelectAnswer(4); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("option 4: got %v, want ErrInvalidOption", err)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := p.Advance(); !errors.Is(err, ErrAnswerRequired) {
		t.Errorf("got %v, want ErrAnswerRequired", err)
	}
}

func TestFullPlaythroughScoring(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	session := seedSession(t, st, now, time.Hour, gradedQuestions())

	finished := make(chan FinishSummary, 1)
	p := newTestPlayer(st, now, func(s FinishSummary) { finished <- s })
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	// Correct, correct, wrong.
	answers := []int{0, 1, 0}
	for i, opt := range answers {
		if _, err := p.SelectAnswer(opt); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if err := p.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if p.State() != PlayerFinished {
		t.Fatalf("state = %s, want %s", p.State(), PlayerFinished)
	}

	result, err := p.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.CorrectCount != 2 || result.TotalQuestions != 3 {
		t.Errorf("result = %+v, want 2/3", result)
	}
	if result.Percentage != 67 {
		t.Errorf("percentage = %d, want 67", result.Percentage)
	}

	select {
	case summary := <-finished:
		if summary.QuizID != session.ID || summary.Name != "Asha" {
			t.Errorf("finish summary = %+v", summary)
		}
	case <-time.After(time.Second):
		t.Fatal("finish hook never fired")
	}

	// Finished means no further play.
	if _, err := p.SelectAnswer(0); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("answer after finish: got %v, want ErrNotInProgress", err)
	}
}

func TestExpiryForceFinishesWithoutDeletingRecord(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, 2*time.Second, gradedQuestions())

	finished := make(chan FinishSummary, 1)
	p := newTestPlayer(st, now, func(s FinishSummary) { finished <- s })
	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	// Answer only the first question, then let the clock run out.
	if _, err := p.SelectAnswer(0); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("player never expired")
	}

	if p.State() != PlayerFinished {
		t.Fatalf("state = %s, want %s", p.State(), PlayerFinished)
	}

	// Unanswered questions count against the score.
	result, err := p.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.CorrectCount != 1 || result.TotalQuestions != 3 || result.Percentage != 33 {
		t.Errorf("result = %+v, want 1/3 (33%%)", result)
	}

	// Cleanup of the shared record is the teacher's job, never a player's.
	if _, err := st.Get(context.Background()); err != nil {
		t.Errorf("player expiry removed the shared record: %v", err)
	}
}

func TestResultOnlyWhenFinished(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()
	seedSession(t, st, now, time.Hour, gradedQuestions())

	p := newTestPlayer(st, now, nil)
	if _, err := p.Result(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("before join: got %v, want ErrNotFinished", err)
	}

	if err := p.Join(context.Background(), "Asha", "ABC123"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := p.Result(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("mid-quiz: got %v, want ErrNotFinished", err)
	}
}
