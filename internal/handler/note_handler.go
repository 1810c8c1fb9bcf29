package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pptuition/tuition-backend/internal/model"
	"github.com/pptuition/tuition-backend/internal/response"
	"github.com/pptuition/tuition-backend/internal/service"
	"github.com/pptuition/tuition-backend/internal/validator"
)

// NoteHandler handles study note endpoints.
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List godoc
// GET /api/v1/student/notes?class_level=N
func (h *NoteHandler) List(c *gin.Context) {
	classLevel, _ := strconv.Atoi(c.DefaultQuery("class_level", "0"))

	notes, err := h.noteService.List(c.Request.Context(), classLevel)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notes": notes})
}

// Create godoc
// POST /api/v1/teacher/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req model.CreateNoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"note": note})
}

// Update godoc
// PUT /api/v1/teacher/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateNoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"note": note})
}

// Delete godoc
// DELETE /api/v1/teacher/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
