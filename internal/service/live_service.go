package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/livequiz"
	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/repository"
	"github.com/pptuition/tuition-backend/internal/store"
	ws "github.com/pptuition/tuition-backend/internal/websocket"
)

// ErrPlayerNotFound is returned for unknown or already-pruned player IDs.
var ErrPlayerNotFound = errors.New("player not found")

// LiveQuizService bridges the HTTP layer to the live-quiz protocol. It owns
// the teacher's session manager and a registry of in-memory players, one per
// joined student. Play state never outlives its player; only finished
// results are persisted.
type LiveQuizService struct {
	manager     *livequiz.Manager
	store       store.SessionStore
	rdb         *redis.Client
	quizRepo    *repository.QuizRepository
	resultRepo  *repository.ResultRepository
	studentRepo *repository.StudentRepository
	clock       livequiz.Clock
	log         zerolog.Logger

	mu      sync.Mutex
	players map[uuid.UUID]*playerEntry
}

type playerEntry struct {
	player   *livequiz.Player
	joinedAt time.Time
}

// NewLiveQuizService creates the live quiz service and wires the manager's
// stop hook to the event channel.
func NewLiveQuizService(
	manager *livequiz.Manager,
	st store.SessionStore,
	rdb *redis.Client,
	quizRepo *repository.QuizRepository,
	resultRepo *repository.ResultRepository,
	studentRepo *repository.StudentRepository,
	clock livequiz.Clock,
	log zerolog.Logger,
) *LiveQuizService {
	if clock == nil {
		clock = time.Now
	}
	s := &LiveQuizService{
		manager:     manager,
		store:       st,
		rdb:         rdb,
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		clock:       clock,
		log:         log.With().Str("component", "live_service").Logger(),
		players:     make(map[uuid.UUID]*playerEntry),
	}

	manager.SetStopHook(func(session *model.LiveSession, expired bool) {
		s.publish(ws.LiveEvent{
			Event:    ws.EventSessionStopped,
			QuizID:   session.ID.String(),
			Title:    session.Title,
			JoinCode: session.JoinCode,
			Expired:  expired,
		})
	})

	return s
}

// ─── Teacher side ───────────────────────────────────────────────────

// StartLive starts a live session for the given quiz.
func (s *LiveQuizService) StartLive(ctx context.Context, quizID uuid.UUID, durationMinutes int) (*model.LiveSession, error) {
	session, err := s.manager.StartSession(ctx, quizID, time.Duration(durationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}

	s.publish(ws.LiveEvent{
		Event:    ws.EventSessionStarted,
		QuizID:   session.ID.String(),
		Title:    session.Title,
		JoinCode: session.JoinCode,
	})
	return session, nil
}

// StopLive terminates the live session. Idempotent.
func (s *LiveQuizService) StopLive(ctx context.Context) error {
	return s.manager.StopSession(ctx)
}

// LiveStatus is the teacher dashboard's poll view of the live session.
type LiveStatus struct {
	State            livequiz.ManagerState `json:"state"`
	Session          *model.LiveSession    `json:"session,omitempty"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	ActivePlayers    int                   `json:"active_players"`
}

// Status reports the manager state, remaining time and player count.
func (s *LiveQuizService) Status() *LiveStatus {
	s.mu.Lock()
	active := 0
	for _, e := range s.players {
		if e.player.State() == livequiz.PlayerInProgress {
			active++
		}
	}
	s.mu.Unlock()

	return &LiveStatus{
		State:            s.manager.State(),
		Session:          s.manager.Current(),
		RemainingSeconds: s.manager.Remaining(),
		ActivePlayers:    active,
	}
}

// ─── Student side ───────────────────────────────────────────────────

// QuestionView is a question as shown to a player: no correct option, no
// explanation. Those are revealed per-answer.
type QuestionView struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// JoinView is returned to a student who joined successfully.
type JoinView struct {
	PlayerID         uuid.UUID    `json:"player_id"`
	Title            string       `json:"title"`
	ClassLevel       int          `json:"class_level"`
	RemainingSeconds int          `json:"remaining_seconds"`
	Question         QuestionView `json:"question"`
}

// AnswerView reveals the grading of a selection.
type AnswerView struct {
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correct_option"`
	Explanation   string `json:"explanation"`
}

// AdvanceView reports the outcome of moving on.
type AdvanceView struct {
	Finished bool                 `json:"finished"`
	Question *QuestionView        `json:"question,omitempty"`
	Result   *model.StudentResult `json:"result,omitempty"`
}

// PlayerView is the poll view of one player's state machine.
type PlayerView struct {
	State            livequiz.PlayerState `json:"state"`
	RemainingSeconds int                  `json:"remaining_seconds"`
	Question         *QuestionView        `json:"question,omitempty"`
	Answered         bool                 `json:"answered"`
	Result           *model.StudentResult `json:"result,omitempty"`
}

// Join creates a player, validates the code against the shared store and
// registers the player for subsequent calls.
func (s *LiveQuizService) Join(ctx context.Context, name, code string) (*JoinView, error) {
	player := livequiz.NewPlayer(s.store, s.clock, s.persistFinish)

	if err := player.Join(ctx, name, code); err != nil {
		return nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	s.players[id] = &playerEntry{player: player, joinedAt: s.clock()}
	s.mu.Unlock()

	session := player.Session()
	question, index, err := player.CurrentQuestion()
	if err != nil {
		return nil, err
	}

	s.publish(ws.LiveEvent{
		Event:      ws.EventPlayerJoined,
		QuizID:     session.ID.String(),
		Title:      session.Title,
		PlayerName: player.Name(),
	})

	s.log.Info().
		Str("player", player.Name()).
		Str("quiz_id", session.ID.String()).
		Int("remaining", player.Remaining()).
		Msg("Player joined live session")

	return &JoinView{
		PlayerID:         id,
		Title:            session.Title,
		ClassLevel:       session.ClassLevel,
		RemainingSeconds: player.Remaining(),
		Question:         questionView(question, index, len(session.Questions)),
	}, nil
}

// Answer records a selection for a player's current question.
func (s *LiveQuizService) Answer(playerID uuid.UUID, option int) (*AnswerView, error) {
	player, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}

	question, _, err := player.CurrentQuestion()
	if err != nil {
		return nil, err
	}

	record, err := player.SelectAnswer(option)
	if err != nil {
		return nil, err
	}

	return &AnswerView{
		Correct:       record.Correct,
		CorrectOption: question.CorrectOption,
		Explanation:   question.Explanation,
	}, nil
}

// Advance moves a player to the next question or finishes the quiz.
func (s *LiveQuizService) Advance(playerID uuid.UUID) (*AdvanceView, error) {
	player, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}

	if err := player.Advance(); err != nil {
		return nil, err
	}

	if player.State() == livequiz.PlayerFinished {
		result, err := player.Result()
		if err != nil {
			return nil, err
		}
		return &AdvanceView{Finished: true, Result: &result}, nil
	}

	question, index, err := player.CurrentQuestion()
	if err != nil {
		return nil, err
	}
	view := questionView(question, index, len(player.Session().Questions))
	return &AdvanceView{Question: &view}, nil
}

// PlayerState returns the poll view for a player, covering page reloads and
// the expiry discovered between polls.
func (s *LiveQuizService) PlayerState(playerID uuid.UUID) (*PlayerView, error) {
	player, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}

	view := &PlayerView{
		State:            player.State(),
		RemainingSeconds: player.Remaining(),
		Answered:         player.Answered(),
	}

	switch player.State() {
	case livequiz.PlayerInProgress:
		question, index, err := player.CurrentQuestion()
		if err != nil {
			return nil, err
		}
		q := questionView(question, index, len(player.Session().Questions))
		view.Question = &q
	case livequiz.PlayerFinished:
		result, err := player.Result()
		if err != nil {
			return nil, err
		}
		view.Result = &result
	}

	return view, nil
}

// Result returns the final score for a finished player.
func (s *LiveQuizService) Result(playerID uuid.UUID) (*model.StudentResult, error) {
	player, err := s.lookup(playerID)
	if err != nil {
		return nil, err
	}
	result, err := player.Result()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PrunePlayers drops finished players older than the given age and returns
// how many were removed. Called by the reaper worker.
func (s *LiveQuizService) PrunePlayers(olderThan time.Duration) int {
	cutoff := s.clock().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.players {
		if entry.player.State() == livequiz.PlayerFinished && entry.joinedAt.Before(cutoff) {
			delete(s.players, id)
			removed++
		}
	}
	return removed
}

// ─── Internals ──────────────────────────────────────────────────────

func (s *LiveQuizService) lookup(playerID uuid.UUID) (*livequiz.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return entry.player, nil
}

// persistFinish runs whenever any player reaches Finished, including by
// timer expiry, so results are never lost to an abandoned tab.
func (s *LiveQuizService) persistFinish(summary livequiz.FinishSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := &model.QuizResult{
		QuizID:           summary.QuizID,
		StudentName:      summary.Name,
		Score:            summary.Result.CorrectCount,
		TotalQuestions:   summary.Result.TotalQuestions,
		Percentage:       summary.Result.Percentage,
		TimeTakenSeconds: int(summary.TimeTaken / time.Second),
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		s.log.Error().Err(err).Str("player", summary.Name).Msg("Failed to persist quiz result")
	}

	if err := s.quizRepo.IncrementAttempts(ctx, summary.QuizID); err != nil {
		s.log.Warn().Err(err).Msg("Failed to bump quiz attempts")
	}
	if err := s.studentRepo.RecordAttempt(ctx, summary.Name, summary.Result.Percentage); err != nil {
		s.log.Warn().Err(err).Msg("Failed to update student stats")
	}

	s.publish(ws.LiveEvent{
		Event:      ws.EventPlayerFinished,
		QuizID:     summary.QuizID.String(),
		PlayerName: summary.Name,
		Percentage: summary.Result.Percentage,
	})
}

func (s *LiveQuizService) publish(event ws.LiveEvent) {
	if s.rdb == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.rdb.Publish(ctx, config.StoreKey.LiveEventsChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("event", string(event.Event)).Msg("Failed to publish live event")
	}
}

func questionView(q model.Question, index, total int) QuestionView {
	return QuestionView{
		Index:   index,
		Total:   total,
		Text:    q.Text,
		Options: q.Options,
	}
}
