package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/generative-ai-go/genai"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/model"
)

// Generator errors.
var (
	ErrGeminiNotConfigured  = errors.New("gemini API key not configured")
	ErrPDFUnreadable        = errors.New("could not parse PDF")
	ErrPDFTooShort          = errors.New("pdf does not contain enough text content")
	ErrBadModelOutput       = errors.New("failed to parse AI response")
	ErrGenerationInProgress = errors.New("a generation is already in progress")
)

// maxPromptChars caps the study material included in the prompt; Gemini has
// token limits and tuition hand-outs can run long.
const maxPromptChars = 15000

// minTextChars is the minimum extracted text needed to generate anything
// meaningful.
const minTextChars = 100

// GenerateRequest carries one PDF-to-quiz generation job.
type GenerateRequest struct {
	Title        string
	ClassLevel   int
	NumQuestions int
	Difficulty   model.Difficulty
	PDF          []byte
}

// GeneratorService turns an uploaded PDF into a stored quiz by extracting
// its text and asking Gemini for multiple-choice questions. One generation
// runs at a time: the busy flag gates duplicate submissions, matching the
// portal's in-progress guard.
type GeneratorService struct {
	model       *genai.GenerativeModel
	quizService *QuizService
	log         zerolog.Logger
	busy        atomic.Bool
}

// NewGeneratorService creates the generator. Without an API key the service
// is constructed but every generation fails with ErrGeminiNotConfigured.
func NewGeneratorService(ctx context.Context, cfg *config.Config, quizService *QuizService, log zerolog.Logger) (*GeneratorService, error) {
	s := &GeneratorService{
		quizService: quizService,
		log:         log.With().Str("component", "generator_service").Logger(),
	}

	if cfg.GeminiAPIKey == "" {
		s.log.Warn().Msg("GEMINI_API_KEY is not set; quiz generation is disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("initialize gemini client: %w", err)
	}
	s.model = client.GenerativeModel(cfg.GeminiModel)
	return s, nil
}

// GenerateFromPDF runs the full pipeline and persists the resulting quiz.
func (s *GeneratorService) GenerateFromPDF(ctx context.Context, req GenerateRequest) (*model.Quiz, []model.Question, error) {
	if s.model == nil {
		return nil, nil, ErrGeminiNotConfigured
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, nil, ErrGenerationInProgress
	}
	defer s.busy.Store(false)

	text, err := extractPDFText(req.PDF)
	if err != nil {
		return nil, nil, ErrPDFUnreadable
	}
	if len(strings.TrimSpace(text)) < minTextChars {
		return nil, nil, ErrPDFTooShort
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := buildPrompt(text, req.NumQuestions, req.ClassLevel, req.Difficulty)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, nil, fmt.Errorf("generate content: %w", err)
	}

	questions, err := parseGeneratedQuestions(collectText(resp))
	if err != nil {
		return nil, nil, err
	}

	quiz, err := s.quizService.CreateWithQuestions(ctx, req.Title, req.ClassLevel, req.Difficulty, questions)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("quiz_id", quiz.ID.String()).
		Int("questions", len(questions)).
		Msg("Quiz generated from PDF")

	return quiz, questions, nil
}

// extractPDFText pulls plain text out of a PDF byte slice.
func extractPDFText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildPrompt mirrors the portal's CBSE science prompt: a fixed question
// count, difficulty guidance and a strict JSON output contract.
func buildPrompt(material string, numQuestions, classLevel int, difficulty model.Difficulty) string {
	return fmt.Sprintf(`You are an expert CBSE Science teacher creating a quiz for Class %d students.

Based on the following study material, generate exactly %d multiple choice questions.

Difficulty Level: %s
- Easy: Basic recall and understanding questions
- Medium: Application and analysis questions
- Hard: Higher-order thinking and problem-solving questions

Study Material:
%s

Generate questions in the following JSON format. Return ONLY valid JSON, no additional text:
{
  "questions": [
    {
      "question": "The question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0,
      "explanation": "Brief explanation of why this answer is correct"
    }
  ]
}

Important:
- Each question must have exactly 4 options
- correctAnswer is the index (0-3) of the correct option
- Questions should be based on the study material provided
- Ensure questions are appropriate for Class %d CBSE Science curriculum
- Include a brief explanation for each answer`,
		classLevel, numQuestions, difficulty, material, classLevel)
}

// collectText concatenates the text parts of a Gemini response.
func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// generatedQuestion matches the JSON contract in the prompt.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// parseGeneratedQuestions extracts the JSON object from a model response
// (tolerating stray prose or code fences around it) and validates every
// question before returning.
func parseGeneratedQuestions(raw string) ([]model.Question, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrBadModelOutput
	}

	var parsed struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, ErrBadModelOutput
	}
	if len(parsed.Questions) == 0 {
		return nil, ErrBadModelOutput
	}

	questions := make([]model.Question, 0, len(parsed.Questions))
	for _, gq := range parsed.Questions {
		if gq.Question == "" || len(gq.Options) != 4 {
			return nil, ErrBadModelOutput
		}
		if gq.CorrectAnswer < 0 || gq.CorrectAnswer > 3 {
			return nil, ErrBadModelOutput
		}
		questions = append(questions, model.Question{
			Text:          gq.Question,
			Options:       gq.Options,
			CorrectOption: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
		})
	}
	return questions, nil
}
