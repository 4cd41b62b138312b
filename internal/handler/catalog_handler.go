package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linuxgeek/simulado/internal/model"
	"github.com/linuxgeek/simulado/internal/response"
	"github.com/linuxgeek/simulado/internal/service"
)

// CatalogHandler serves the read-only question bank endpoints consumed by
// the exam engine's configuration and start steps.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSimulados godoc
// GET /api/v1/simulados
// Returns all active simulados.
func (h *CatalogHandler) ListSimulados(c *gin.Context) {
	sims, err := h.catalog.ListSimulados(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if sims == nil {
		sims = []model.Simulado{}
	}
	response.Success(c, http.StatusOK, sims)
}

// GetExamOptions godoc
// GET /api/v1/simulados/:slug/exams
// Returns the exam subsets of a simulado plus the question types present,
// so the configuration step can disable unavailable modes.
func (h *CatalogHandler) GetExamOptions(c *gin.Context) {
	slug := c.Param("slug")

	opts, err := h.catalog.ExamOptions(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrSimuladoNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSimuladoNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// GetQuestions godoc
// GET /api/v1/simulados/:slug/questions?exam=101
// Returns the question pool of a simulado, optionally filtered by exam
// code. An unknown slug is 404; a known slug with no questions returns an
// empty array; clients must not start a session on it.
func (h *CatalogHandler) GetQuestions(c *gin.Context) {
	slug := c.Param("slug")
	examCode := c.Query("exam")

	pool, err := h.catalog.QuestionPool(c.Request.Context(), slug, examCode)
	if err != nil {
		if errors.Is(err, service.ErrSimuladoNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSimuladoNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, pool)
}
