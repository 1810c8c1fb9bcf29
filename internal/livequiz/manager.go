package livequiz

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/store"
)

// ManagerState enumerates the teacher-side session manager states.
type ManagerState string

const (
	ManagerIdle   ManagerState = "IDLE"
	ManagerActive ManagerState = "ACTIVE"
)

// QuizSource supplies a previously authored quiz and its question list.
// The manager never creates or edits questions.
type QuizSource interface {
	QuizWithQuestions(ctx context.Context, quizID uuid.UUID) (*model.Quiz, []model.Question, error)
}

// Manager owns the teacher side of the live-quiz protocol: it creates,
// advertises and terminates live sessions, and holds the session's
// authoritative end time. It is the only component that ever deletes the
// shared record — a student running out of time never does.
type Manager struct {
	store   store.SessionStore
	quizzes QuizSource
	clock   Clock
	rng     *rand.Rand
	log     zerolog.Logger

	// tickEvery is overridable in-package so expiry tests run in
	// milliseconds instead of wall seconds.
	tickEvery time.Duration

	// onStop, when set, is invoked after a session is removed from the
	// store. The bool reports whether the stop came from timer expiry.
	onStop func(session *model.LiveSession, expired bool)

	mu      sync.Mutex
	state   ManagerState
	current *model.LiveSession
	timer   *Countdown
	gen     uint64
}

// NewManager creates a session manager. clock and rng may be nil, in which
// case wall time and a time-seeded source are used.
func NewManager(st store.SessionStore, quizzes QuizSource, clock Clock, rng *rand.Rand, log zerolog.Logger) *Manager {
	if clock == nil {
		clock = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		store:     st,
		quizzes:   quizzes,
		clock:     clock,
		rng:       rng,
		log:       log.With().Str("component", "live_manager").Logger(),
		tickEvery: time.Second,
		state:     ManagerIdle,
	}
}

// SetStopHook registers a callback fired after every stop (manual or
// expiry). Must be set before the first StartSession.
func (m *Manager) SetStopHook(fn func(session *model.LiveSession, expired bool)) {
	m.onStop = fn
}

// StartSession generates a join code, computes the absolute end time and
// writes the full session record to the shared store, overwriting any prior
// record. The session is visible to all readers of the store immediately.
func (m *Manager) StartSession(ctx context.Context, quizID uuid.UUID, duration time.Duration) (*model.LiveSession, error) {
	if quizID == uuid.Nil {
		return nil, ErrNoQuizSelected
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	quiz, questions, err := m.quizzes.QuizWithQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	session := &model.LiveSession{
		ID:         quiz.ID,
		Title:      quiz.Title,
		ClassLevel: quiz.ClassLevel,
		JoinCode:   GenerateCode(CodeAlphabet, CodeLength, m.rng),
		StartTime:  now,
		EndTime:    now.Add(duration),
		Questions:  questions,
	}

	// Write before touching local state so a store failure leaves the
	// manager exactly as it was.
	if err := m.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("publish live session: %w", err)
	}

	if m.timer != nil {
		m.timer.Stop()
	}

	m.gen++
	gen := m.gen
	m.state = ManagerActive
	m.current = session
	m.timer = startCountdown(session.RemainingSeconds(now), m.tickEvery, func() {
		m.expire(gen)
	})

	m.log.Info().
		Str("quiz_id", session.ID.String()).
		Str("join_code", session.JoinCode).
		Time("end_time", session.EndTime).
		Msg("Live session started")

	return session, nil
}

// StopSession removes the live session record and returns to Idle,
// regardless of remaining time. Idempotent: stopping an idle manager is a
// no-op. In-flight students are not notified; they keep playing against
// their own countdown (documented limitation of the store-polling design).
func (m *Manager) StopSession(ctx context.Context) error {
	return m.stop(ctx, false)
}

// expire is the countdown callback. The generation guard ensures a timer
// started by a prior session never affects a subsequent one.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	stale := gen != m.gen || m.state != ManagerActive
	m.mu.Unlock()
	if stale {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.stop(ctx, true); err != nil {
		m.log.Error().Err(err).Msg("Failed to clear expired live session")
	}
}

func (m *Manager) stop(ctx context.Context, expired bool) error {
	m.mu.Lock()
	if m.state == ManagerIdle {
		m.mu.Unlock()
		return nil
	}

	session := m.current
	timer := m.timer
	m.state = ManagerIdle
	m.current = nil
	m.timer = nil
	m.gen++ // invalidate any pending expiry callback
	m.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}

	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("remove live session: %w", err)
	}

	m.log.Info().
		Str("quiz_id", session.ID.String()).
		Bool("expired", expired).
		Msg("Live session stopped")

	if m.onStop != nil {
		m.onStop(session, expired)
	}
	return nil
}

// State returns the manager state.
func (m *Manager) State() ManagerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active session, or nil when idle.
func (m *Manager) Current() *model.LiveSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Remaining returns the seconds left on the manager's own countdown.
func (m *Manager) Remaining() int {
	m.mu.Lock()
	timer := m.timer
	m.mu.Unlock()
	if timer == nil {
		return 0
	}
	return timer.Remaining()
}
