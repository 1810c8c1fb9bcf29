package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/middleware"
	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/response"
	"github.com/pptuition/tuition-backend/internal/service"
	"github.com/pptuition/tuition-backend/internal/validator"
)

// PracticeHandler handles self-paced quiz taking for logged-in students.
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// GetQuiz godoc
// GET /api/v1/student/quizzes/:id
// Returns the quiz with its questions, answers withheld. Those are
// revealed by the attempt review, like the live answer flow.
func (h *PracticeHandler) GetQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	quiz, questions, err := h.practiceService.QuizForStudent(c.Request.Context(), id, claims.ClassLevel)
	if err != nil {
		h.failPractice(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"quiz":      quiz,
		"questions": questions,
	})
}

// SubmitAttempt godoc
// POST /api/v1/student/quizzes/:id/attempt
// Grades a full answer sheet and records the attempt.
func (h *PracticeHandler) SubmitAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.QuizAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.practiceService.SubmitAttempt(c.Request.Context(), claims.Name, claims.ClassLevel, id, req)
	if err != nil {
		h.failPractice(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func (h *PracticeHandler) failPractice(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrWrongClassLevel):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrAnswerCountMismatch):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidPayload)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
