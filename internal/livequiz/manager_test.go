package livequiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/store"
)

type fakeQuizSource struct {
	quiz      *model.Quiz
	questions []model.Question
	err       error
}

func (f *fakeQuizSource) QuizWithQuestions(_ context.Context, _ uuid.UUID) (*model.Quiz, []model.Question, error) {
	return f.quiz, f.questions, f.err
}

func testQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			Text:          "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: 1,
		}
	}
	return qs
}

func newTestManager(st store.SessionStore, qs []model.Question, now time.Time) (*Manager, uuid.UUID) {
	quizID := uuid.New()
	src := &fakeQuizSource{
		quiz:      &model.Quiz{ID: quizID, Title: "Motion", ClassLevel: 9},
		questions: qs,
	}
	m := NewManager(st, src, func() time.Time { return now }, rand.New(rand.NewSource(1)), zerolog.Nop())
	m.tickEvery = testTick
	return m, quizID
}

func TestStartSessionPublishesRecord(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m, quizID := newTestManager(st, testQuestions(3), now)

	session, err := m.StartSession(context.Background(), quizID, 30*time.Minute)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if session.ID != quizID {
		t.Errorf("session ID = %s, want quiz ID %s", session.ID, quizID)
	}
	if len(session.JoinCode) != CodeLength {
		t.Errorf("join code %q: length %d, want %d", session.JoinCode, len(session.JoinCode), CodeLength)
	}
	if want := now.Add(30 * time.Minute); !session.EndTime.Equal(want) {
		t.Errorf("end time = %v, want %v", session.EndTime, want)
	}

	stored, err := st.Get(context.Background())
	if err != nil {
		t.Fatalf("store Get: %v", err)
	}
	if stored.JoinCode != session.JoinCode {
		t.Errorf("stored code %q, want %q", stored.JoinCode, session.JoinCode)
	}
	if len(stored.Questions) != 3 {
		t.Errorf("stored %d questions, want 3", len(stored.Questions))
	}

	if m.State() != ManagerActive {
		t.Errorf("state = %s, want %s", m.State(), ManagerActive)
	}
}

func TestStartSessionValidation(t *testing.T) {
	st := store.NewMemoryStore()
	now := time.Now()

	m, quizID := newTestManager(st, testQuestions(3), now)
	if _, err := m.StartSession(context.Background(), uuid.Nil, time.Minute); !errors.Is(err, ErrNoQuizSelected) {
		t.Errorf("nil quiz: got %v, want ErrNoQuizSelected", err)
	}
	if _, err := m.StartSession(context.Background(), quizID, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: got %v, want ErrInvalidDuration", err)
	}

	empty, emptyID := newTestManager(st, nil, now)
	if _, err := empty.StartSession(context.Background(), emptyID, time.Minute); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("no questions: got %v, want ErrNoQuestions", err)
	}

	if m.State() != ManagerIdle {
		t.Errorf("failed starts changed state to %s", m.State())
	}
	if _, err := st.Get(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed starts published a record")
	}
}

func TestStopSessionIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	m, quizID := newTestManager(st, testQuestions(2), time.Now())

	// Stopping an idle manager is a no-op.
	if err := m.StopSession(context.Background()); err != nil {
		t.Fatalf("stop while idle: %v", err)
	}

	if _, err := m.StartSession(context.Background(), quizID, time.Hour); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := m.StopSession(context.Background()); err != nil {
		t.Fatalf("StopSession: %v", err)
	}

	if m.State() != ManagerIdle {
		t.Errorf("state = %s after stop, want %s", m.State(), ManagerIdle)
	}
	if _, err := st.Get(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("record still present after stop")
	}

	if err := m.StopSession(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	st := store.NewMemoryStore()
	m, quizID := newTestManager(st, testQuestions(2), time.Now())

	first, err := m.StartSession(context.Background(), quizID, time.Hour)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := m.StartSession(context.Background(), quizID, time.Hour)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if first.JoinCode == second.JoinCode {
		t.Fatalf("restart reused join code %q", first.JoinCode)
	}

	stored, err := st.Get(context.Background())
	if err != nil {
		t.Fatalf("store Get: %v", err)
	}
	if stored.JoinCode != second.JoinCode {
		t.Errorf("store holds %q, want latest %q", stored.JoinCode, second.JoinCode)
	}
}

func TestExpiryClearsStoreAndReportsExpired(t *testing.T) {
	st := store.NewMemoryStore()
	m, quizID := newTestManager(st, testQuestions(2), time.Now())

	stopped := make(chan bool, 1)
	m.SetStopHook(func(_ *model.LiveSession, expired bool) {
		stopped <- expired
	})

	// Two wall seconds of session time, ticked at test speed.
	if _, err := m.StartSession(context.Background(), quizID, 2*time.Second); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	select {
	case expired := <-stopped:
		if !expired {
			t.Error("stop hook reported manual stop, want expiry")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("session never expired")
	}

	waitFor(t, func() bool { return m.State() == ManagerIdle })
	if _, err := st.Get(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expired session still in store")
	}
}

func TestManualStopReportsNotExpired(t *testing.T) {
	st := store.NewMemoryStore()
	m, quizID := newTestManager(st, testQuestions(2), time.Now())

	stopped := make(chan bool, 1)
	m.SetStopHook(func(_ *model.LiveSession, expired bool) {
		stopped <- expired
	})

	if _, err := m.StartSession(context.Background(), quizID, time.Hour); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := m.StopSession(context.Background()); err != nil {
		t.Fatalf("StopSession: %v", err)
	}

	select {
	case expired := <-stopped:
		if expired {
			t.Error("stop hook reported expiry, want manual stop")
		}
	case <-time.After(time.Second):
		t.Fatal("stop hook never fired")
	}
}

func TestStaleTimerCannotKillNextSession(t *testing.T) {
	st := store.NewMemoryStore()
	m, quizID := newTestManager(st, testQuestions(2), time.Now())

	// Short first session, then immediately replace it with a long one.
	if _, err := m.StartSession(context.Background(), quizID, 2*time.Second); err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := m.StartSession(context.Background(), quizID, time.Hour)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}

	// Wait past where the first timer would have fired.
	time.Sleep(20 * testTick)

	if m.State() != ManagerActive {
		t.Fatalf("state = %s, stale timer killed the replacement", m.State())
	}
	stored, err := st.Get(context.Background())
	if err != nil {
		t.Fatalf("store Get: %v", err)
	}
	if stored.JoinCode != second.JoinCode {
		t.Errorf("store holds %q, want %q", stored.JoinCode, second.JoinCode)
	}
}
