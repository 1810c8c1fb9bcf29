package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/repository"
	"github.com/pptuition/tuition-backend/internal/response"
)

// ResultHandler exposes persisted quiz results to the teacher dashboard.
type ResultHandler struct {
	resultRepo *repository.ResultRepository
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultRepo *repository.ResultRepository) *ResultHandler {
	return &ResultHandler{resultRepo: resultRepo}
}

// List godoc
// GET /api/v1/teacher/results?quiz_id=...
// Without quiz_id all results are returned, newest first.
func (h *ResultHandler) List(c *gin.Context) {
	var quizID *uuid.UUID
	if raw := c.Query("quiz_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		quizID = &id
	}

	results, err := h.resultRepo.List(c.Request.Context(), quizID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}
