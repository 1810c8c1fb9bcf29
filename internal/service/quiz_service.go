package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/repository"
)

// QuizService handles quiz authoring and acts as the question provider for
// the live-quiz manager.
type QuizService struct {
	quizRepo *repository.QuizRepository
	log      zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizRepo *repository.QuizRepository, log zerolog.Logger) *QuizService {
	return &QuizService{
		quizRepo: quizRepo,
		log:      log.With().Str("component", "quiz_service").Logger(),
	}
}

// List returns quizzes, optionally filtered by class level (0 = all).
func (s *QuizService) List(ctx context.Context, classLevel int) ([]model.Quiz, error) {
	return s.quizRepo.List(ctx, classLevel)
}

// Get returns a quiz with its questions.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*model.Quiz, []model.Question, error) {
	return s.QuizWithQuestions(ctx, id)
}

// QuizWithQuestions implements livequiz.QuizSource.
func (s *QuizService) QuizWithQuestions(ctx context.Context, id uuid.UUID) (*model.Quiz, []model.Question, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get quiz: %w", err)
	}
	questions, err := s.quizRepo.ListQuestions(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list questions: %w", err)
	}
	return quiz, questions, nil
}

// Create adds a quiz with no questions yet.
func (s *QuizService) Create(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error) {
	difficulty := model.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	quiz := &model.Quiz{
		Title:      req.Title,
		ClassLevel: req.ClassLevel,
		Difficulty: difficulty,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// CreateWithQuestions adds a quiz together with a full question list, used
// by the AI generator to persist its output in one step.
func (s *QuizService) CreateWithQuestions(ctx context.Context, title string, classLevel int, difficulty model.Difficulty, questions []model.Question) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:      title,
		ClassLevel: classLevel,
		Difficulty: difficulty,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	if err := s.quizRepo.ReplaceQuestions(ctx, quiz.ID, questions); err != nil {
		return nil, fmt.Errorf("store questions: %w", err)
	}
	quiz.QuestionCount = len(questions)
	return quiz, nil
}

// Update edits quiz metadata; zero-valued fields are left unchanged.
func (s *QuizService) Update(ctx context.Context, id uuid.UUID, req model.UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.ClassLevel != 0 {
		quiz.ClassLevel = req.ClassLevel
	}
	if req.Difficulty != "" {
		quiz.Difficulty = model.Difficulty(req.Difficulty)
	}

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

// Delete removes a quiz and its questions.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.quizRepo.Delete(ctx, id)
}

// ReplaceQuestions swaps a quiz's question list.
func (s *QuizService) ReplaceQuestions(ctx context.Context, id uuid.UUID, payloads []model.QuestionPayload) ([]model.Question, error) {
	if _, err := s.quizRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	questions := make([]model.Question, len(payloads))
	for i, p := range payloads {
		questions[i] = model.Question{
			Text:          p.Text,
			Options:       p.Options,
			CorrectOption: p.CorrectOption,
			Explanation:   p.Explanation,
		}
	}

	if err := s.quizRepo.ReplaceQuestions(ctx, id, questions); err != nil {
		return nil, fmt.Errorf("replace questions: %w", err)
	}

	s.log.Info().Str("quiz_id", id.String()).Int("count", len(questions)).Msg("Questions replaced")
	return questions, nil
}
