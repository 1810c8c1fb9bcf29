package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/livequiz"
	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/response"
	"github.com/pptuition/tuition-backend/internal/service"
	"github.com/pptuition/tuition-backend/internal/validator"
)

// LiveHandler handles the live quiz protocol: teacher session control and
// the public student join/play endpoints.
type LiveHandler struct {
	liveService *service.LiveQuizService
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(liveService *service.LiveQuizService) *LiveHandler {
	return &LiveHandler{liveService: liveService}
}

// ─── Teacher endpoints ──────────────────────────────────────────────

// Start godoc
// POST /api/v1/teacher/live/start
// Starts a live session for a quiz. Any active session is replaced.
func (h *LiveHandler) Start(c *gin.Context) {
	var req model.StartLiveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.liveService.StartLive(c.Request.Context(), req.QuizID, req.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, livequiz.ErrNoQuizSelected):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuizSelected)
		case errors.Is(err, livequiz.ErrNoQuestions):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
		case errors.Is(err, livequiz.ErrInvalidDuration):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// Stop godoc
// POST /api/v1/teacher/live/stop
// Ends the live session. Succeeds even when none is active.
func (h *LiveHandler) Stop(c *gin.Context) {
	if err := h.liveService.StopLive(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Status godoc
// GET /api/v1/teacher/live/status
// Poll view of the running session: state, remaining time, player count.
func (h *LiveHandler) Status(c *gin.Context) {
	response.Success(c, http.StatusOK, h.liveService.Status())
}

// ─── Student endpoints (public: no account needed to play) ──────────

// Join godoc
// POST /api/v1/live/join
func (h *LiveHandler) Join(c *gin.Context) {
	var req model.JoinLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	view, err := h.liveService.Join(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, livequiz.ErrEmptyName):
			response.Fail(c, http.StatusBadRequest, response.ErrNameRequired)
		case errors.Is(err, livequiz.ErrEmptyCode):
			response.Fail(c, http.StatusBadRequest, response.ErrCodeRequired)
		case errors.Is(err, livequiz.ErrInvalidCode):
			response.Fail(c, http.StatusNotFound, response.ErrInvalidJoinCode)
		case errors.Is(err, livequiz.ErrSessionExpired):
			response.Fail(c, http.StatusGone, response.ErrSessionExpired)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Answer godoc
// POST /api/v1/live/players/:player_id/answer
func (h *LiveHandler) Answer(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("player_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.liveService.Answer(playerID, *req.Option)
	if err != nil {
		h.failPlayer(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Advance godoc
// POST /api/v1/live/players/:player_id/advance
func (h *LiveHandler) Advance(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("player_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.liveService.Advance(playerID)
	if err != nil {
		h.failPlayer(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// State godoc
// GET /api/v1/live/players/:player_id
// Poll view of one player, used for reloads and timeout detection.
func (h *LiveHandler) State(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("player_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.liveService.PlayerState(playerID)
	if err != nil {
		h.failPlayer(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Result godoc
// GET /api/v1/live/players/:player_id/result
func (h *LiveHandler) Result(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("player_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.liveService.Result(playerID)
	if err != nil {
		h.failPlayer(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// failPlayer maps player-side protocol errors onto the response taxonomy.
func (h *LiveHandler) failPlayer(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrPlayerNotFound)
	case errors.Is(err, livequiz.ErrNotInProgress):
		response.Fail(c, http.StatusConflict, response.ErrNotInProgress)
	case errors.Is(err, livequiz.ErrInvalidOption):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, livequiz.ErrAnswerRequired):
		response.Fail(c, http.StatusConflict, response.ErrAnswerRequired)
	case errors.Is(err, livequiz.ErrNotFinished):
		response.Fail(c, http.StatusConflict, response.ErrNotFinished)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
