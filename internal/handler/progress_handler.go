package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linuxgeek/simulado/internal/middleware"
	"github.com/linuxgeek/simulado/internal/model"
	"github.com/linuxgeek/simulado/internal/response"
	"github.com/linuxgeek/simulado/internal/service"
	"github.com/linuxgeek/simulado/internal/validator"
)

// ProgressHandler serves the per-user session-record endpoints (the remote
// tier consumed by the persistence bridge and the progress view).
type ProgressHandler struct {
	progress *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// SaveSession godoc
// POST /api/v1/progress/sessions
// Stores one finished session record for the authenticated user.
// Insert-once by record UUID: resending is a harmless no-op.
func (h *ProgressHandler) SaveSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	var req model.SaveSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.progress.Save(c.Request.Context(), userID, req.Record())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

// ListSessions godoc
// GET /api/v1/progress/sessions
// Returns all session records of the authenticated user, newest first.
func (h *ProgressHandler) ListSessions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	records, err := h.progress.List(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, records)
}
