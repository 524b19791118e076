package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

type Handler struct {
	validations service.ValidationService
	refinements service.RefinementService
}

func NewHandler(validations service.ValidationService, refinements service.RefinementService) *Handler {
	return &Handler{validations: validations, refinements: refinements}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateValidation validates a plan file body and stores the run.
func (h *Handler) CreateValidation(c *gin.Context) {
	var f importer.PlanFile
	if err := c.ShouldBindJSON(&f); err != nil {
		writeError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		return
	}

	run, err := h.validations.ValidatePlanFile(c.Request.Context(), &f, service.ValidateOptions{
		Source: "api",
		Save:   true,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

func (h *Handler) ListValidations(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		writeError(c, err)
		return
	}
	runs, err := h.validations.ListRuns(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"validations": runs})
}

func (h *Handler) GetValidation(c *gin.Context) {
	run, err := h.validations.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handler) ListRefinements(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		writeError(c, err)
		return
	}
	sessions, err := h.refinements.ListSessions(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *Handler) GetRefinement(c *gin.Context) {
	header, entries, err := h.refinements.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": header, "entries": entries})
}

// PlanSchema serves the JSON Schema of the plan file format.
func (h *Handler) PlanSchema(c *gin.Context) {
	data, err := importer.SchemaJSON(importer.PlanFileSchema())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/schema+json", data)
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer, got %q", service.ErrInvalidInput, raw)
	}
	return min(limit, maxListLimit), nil
}
