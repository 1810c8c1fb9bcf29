package livequiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/store"
)

// PlayerState enumerates the student-side state machine states.
// There is no transition back to AwaitingJoin: a finished player is
// discarded and a new one created for the next attempt.
type PlayerState string

const (
	PlayerAwaitingJoin PlayerState = "AWAITING_JOIN"
	PlayerInProgress   PlayerState = "IN_PROGRESS"
	PlayerFinished     PlayerState = "FINISHED"
)

// FinishSummary is handed to the finish hook when a player reaches the
// terminal state, whether by answering the last question or by expiry.
type FinishSummary struct {
	Name      string
	QuizID    uuid.UUID
	Result    model.StudentResult
	TimeTaken time.Duration
}

// Player drives one student through join validation, question presentation,
// answer capture and scoring under a countdown. All play state is owned by
// the player and dies with it; only the shared session record is read, and
// never written.
type Player struct {
	store    store.SessionStore
	clock    Clock
	onFinish func(FinishSummary)

	// tickEvery is overridable in-package for fast expiry tests.
	tickEvery time.Duration

	mu       sync.Mutex
	state    PlayerState
	name     string
	session  *model.LiveSession
	joinedAt time.Time
	index    int
	answered bool
	answers  []model.AnswerRecord
	timer    *Countdown
	gen      uint64
}

// NewPlayer creates a player awaiting join. clock may be nil (wall time);
// onFinish may be nil.
func NewPlayer(st store.SessionStore, clock Clock, onFinish func(FinishSummary)) *Player {
	if clock == nil {
		clock = time.Now
	}
	return &Player{
		store:     st,
		clock:     clock,
		onFinish:  onFinish,
		tickEvery: time.Second,
		state:     PlayerAwaitingJoin,
	}
}

// Join validates the code against the shared store and starts play.
// Blank inputs are rejected before any store read. The player's remaining
// time is derived from the session's absolute end time, not its nominal
// duration, so a late joiner gets correspondingly less time.
func (p *Player) Join(ctx context.Context, name, code string) error {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return ErrEmptyName
	}
	if code == "" {
		return ErrEmptyCode
	}

	session, err := p.store.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("read live session: %w", err)
	}
	if !strings.EqualFold(session.JoinCode, code) {
		return ErrInvalidCode
	}

	now := p.clock()
	if session.Expired(now) {
		// The record may linger after expiry until the teacher's side
		// cleans it up; presence alone is never trusted.
		return ErrSessionExpired
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PlayerAwaitingJoin {
		return ErrAlreadyJoined
	}

	p.name = name
	p.session = session
	p.joinedAt = now
	p.index = 0
	p.answered = false
	p.state = PlayerInProgress

	p.gen++
	gen := p.gen
	p.timer = startCountdown(session.RemainingSeconds(now), p.tickEvery, func() {
		p.expire(gen)
	})

	return nil
}

// SelectAnswer records the student's choice for the current question and
// grades it immediately. The first selection is authoritative: a repeat call
// for the same question is a no-op returning the original record.
func (p *Player) SelectAnswer(option int) (model.AnswerRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PlayerInProgress {
		return model.AnswerRecord{}, ErrNotInProgress
	}

	question := p.session.Questions[p.index]
	if option < 0 || option >= len(question.Options) {
		return model.AnswerRecord{}, ErrInvalidOption
	}

	if p.answered {
		return p.answers[len(p.answers)-1], nil
	}

	record := model.AnswerRecord{
		QuestionIndex:  p.index,
		SelectedOption: option,
		Correct:        option == question.CorrectOption,
	}
	p.answers = append(p.answers, record)
	p.answered = true
	return record, nil
}

// Advance moves to the next question, or finishes after the last one.
// Legal only once the current question has been answered.
func (p *Player) Advance() error {
	p.mu.Lock()

	if p.state != PlayerInProgress {
		p.mu.Unlock()
		return ErrNotInProgress
	}
	if !p.answered {
		p.mu.Unlock()
		return ErrAnswerRequired
	}

	if p.index < len(p.session.Questions)-1 {
		p.index++
		p.answered = false
		p.mu.Unlock()
		return nil
	}

	fire := p.finishLocked()
	p.mu.Unlock()
	fire()
	return nil
}

// expire is the countdown callback: force-finish regardless of how many
// questions remain. Unanswered questions contribute no record and count
// against the score. The shared record is NOT deleted — other students may
// still be playing, and cleanup belongs to the teacher's side alone.
func (p *Player) expire(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.state != PlayerInProgress {
		p.mu.Unlock()
		return
	}
	fire := p.finishLocked()
	p.mu.Unlock()
	fire()
}

// finishLocked transitions to Finished and returns the hook invocation to
// run after the lock is released. Callers must hold p.mu.
func (p *Player) finishLocked() func() {
	p.state = PlayerFinished
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}

	if p.onFinish == nil {
		return func() {}
	}

	summary := FinishSummary{
		Name:      p.name,
		QuizID:    p.session.ID,
		Result:    model.ComputeResult(p.answers, len(p.session.Questions)),
		TimeTaken: p.clock().Sub(p.joinedAt),
	}
	hook := p.onFinish
	return func() { hook(summary) }
}

// State returns the player state.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Name returns the display name captured at join.
func (p *Player) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Session returns the session captured at join, or nil before joining.
func (p *Player) Session() *model.LiveSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// CurrentQuestion returns the question under play and its index.
func (p *Player) CurrentQuestion() (model.Question, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PlayerInProgress {
		return model.Question{}, 0, ErrNotInProgress
	}
	return p.session.Questions[p.index], p.index, nil
}

// Answered reports whether the current question has been answered.
func (p *Player) Answered() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answered
}

// Answers returns a copy of the append-only answer sequence.
func (p *Player) Answers() []model.AnswerRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.AnswerRecord, len(p.answers))
	copy(out, p.answers)
	return out
}

// Remaining returns the seconds left on the player's own countdown.
func (p *Player) Remaining() int {
	p.mu.Lock()
	timer := p.timer
	p.mu.Unlock()
	if timer == nil {
		return 0
	}
	return timer.Remaining()
}

// Result computes the score once the player has finished.
func (p *Player) Result() (model.StudentResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PlayerFinished {
		return model.StudentResult{}, ErrNotFinished
	}
	return model.ComputeResult(p.answers, len(p.session.Questions)), nil
}
