package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/response"
	"github.com/pptuition/tuition-backend/internal/service"
)

// GeneratorHandler handles PDF-to-quiz generation uploads.
type GeneratorHandler struct {
	generator *service.GeneratorService
	cfg       *config.Config
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(generator *service.GeneratorService, cfg *config.Config) *GeneratorHandler {
	return &GeneratorHandler{generator: generator, cfg: cfg}
}

// Generate godoc
// POST /api/v1/teacher/quizzes/generate
// Multipart form: file (PDF), title, class_level, num_questions, difficulty.
func (h *GeneratorHandler) Generate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, ".pdf")
	}
	classLevel, _ := strconv.Atoi(c.DefaultPostForm("class_level", "10"))
	numQuestions, _ := strconv.Atoi(c.DefaultPostForm("num_questions", "5"))
	if numQuestions < 1 || numQuestions > 20 {
		numQuestions = 5
	}
	difficulty := model.Difficulty(c.DefaultPostForm("difficulty", string(model.DifficultyMedium)))

	quiz, questions, err := h.generator.GenerateFromPDF(c.Request.Context(), service.GenerateRequest{
		Title:        title,
		ClassLevel:   classLevel,
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
		PDF:          raw,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGenerationInProgress):
			response.Fail(c, http.StatusConflict, response.ErrGeneratorBusy)
		case errors.Is(err, service.ErrPDFUnreadable):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrPDFTooShort):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrPDFNoText)
		case errors.Is(err, service.ErrBadModelOutput),
			errors.Is(err, service.ErrGeminiNotConfigured):
			response.Fail(c, http.StatusBadGateway, response.ErrGenerationFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"quiz":      quiz,
		"questions": questions,
	})
}
