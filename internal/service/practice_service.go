package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/repository"
)

// Practice errors.
var (
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrWrongClassLevel     = errors.New("quiz belongs to another class level")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)

// SkippedOption marks an unanswered question in an attempt submission.
const SkippedOption = -1

// AttemptAnswer is the per-question review of a graded attempt. Unlike the
// pre-attempt question view, it reveals the correct option and explanation.
type AttemptAnswer struct {
	QuestionIndex int    `json:"question_index"`
	Selected      int    `json:"selected"`
	Skipped       bool   `json:"skipped"`
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correct_option"`
	Explanation   string `json:"explanation"`
}

// AttemptView is the outcome of a graded self-paced attempt.
type AttemptView struct {
	Review []AttemptAnswer     `json:"review"`
	Result model.StudentResult `json:"result"`
}

// PracticeService drives self-paced quizzes: a logged-in student takes any
// quiz for their class outside a live session, submits all answers at once
// and gets a graded review. Scoring and stats recording are shared with the
// live protocol.
type PracticeService struct {
	quizRepo    *repository.QuizRepository
	resultRepo  *repository.ResultRepository
	studentRepo *repository.StudentRepository
	log         zerolog.Logger
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	quizRepo *repository.QuizRepository,
	resultRepo *repository.ResultRepository,
	studentRepo *repository.StudentRepository,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "practice_service").Logger(),
	}
}

// QuizForStudent returns a quiz and its questions stripped of answers, for
// a student of the given class level. classLevel 0 (teacher tooling) skips
// the class check.
func (s *PracticeService) QuizForStudent(ctx context.Context, quizID uuid.UUID, classLevel int) (*model.Quiz, []QuestionView, error) {
	quiz, questions, err := s.load(ctx, quizID, classLevel)
	if err != nil {
		return nil, nil, err
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = questionView(q, i, len(questions))
	}
	return quiz, views, nil
}

// SubmitAttempt grades a full answer sheet, persists the result and folds
// it into the quiz and student stats.
func (s *PracticeService) SubmitAttempt(ctx context.Context, studentName string, classLevel int, quizID uuid.UUID, req model.QuizAttemptRequest) (*AttemptView, error) {
	quiz, questions, err := s.load(ctx, quizID, classLevel)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	records, review := gradeAttempt(questions, req.Answers)
	result := model.ComputeResult(records, len(questions))

	persisted := &model.QuizResult{
		QuizID:           quiz.ID,
		StudentName:      studentName,
		Score:            result.CorrectCount,
		TotalQuestions:   result.TotalQuestions,
		Percentage:       result.Percentage,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}
	if err := s.resultRepo.Create(ctx, persisted); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	if err := s.quizRepo.IncrementAttempts(ctx, quiz.ID); err != nil {
		s.log.Warn().Err(err).Msg("Failed to bump quiz attempts")
	}
	if err := s.studentRepo.RecordAttempt(ctx, studentName, result.Percentage); err != nil {
		s.log.Warn().Err(err).Msg("Failed to update student stats")
	}

	s.log.Info().
		Str("quiz_id", quiz.ID.String()).
		Str("student", studentName).
		Int("percentage", result.Percentage).
		Dur("time_taken", time.Duration(req.TimeTakenSeconds)*time.Second).
		Msg("Practice attempt graded")

	return &AttemptView{Review: review, Result: result}, nil
}

func (s *PracticeService) load(ctx context.Context, quizID uuid.UUID, classLevel int) (*model.Quiz, []model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load quiz: %w", err)
	}
	if classLevel != 0 && quiz.ClassLevel != classLevel {
		return nil, nil, ErrWrongClassLevel
	}

	questions, err := s.quizRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil, ErrQuizNotFound
	}
	return quiz, questions, nil
}

// gradeAttempt scores an index-aligned answer sheet against the question
// list. Skipped or out-of-range selections produce no answer record, so
// they count against the score the same way an unanswered live question
// does.
func gradeAttempt(questions []model.Question, selections []int) ([]model.AnswerRecord, []AttemptAnswer) {
	var records []model.AnswerRecord
	review := make([]AttemptAnswer, len(questions))

	for i, q := range questions {
		sel := selections[i]
		entry := AttemptAnswer{
			QuestionIndex: i,
			Selected:      sel,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
		}

		if sel < 0 || sel >= len(q.Options) {
			entry.Selected = SkippedOption
			entry.Skipped = true
			review[i] = entry
			continue
		}

		entry.Correct = sel == q.CorrectOption
		review[i] = entry
		records = append(records, model.AnswerRecord{
			QuestionIndex:  i,
			SelectedOption: sel,
			Correct:        entry.Correct,
		})
	}
	return records, review
}
