// backend/internal/api/handlers/analyze.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reclaimip/backend/internal/models"
	"github.com/reclaimip/backend/internal/services"
	"github.com/reclaimip/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	defaultLimit   = 19
	maxLimit       = 100
	requestTimeout = 30 * time.Second
)

// Analyzer runs the query pipeline. Satisfied by services.AnalyzeService;
// tests substitute deterministic stubs.
type Analyzer interface {
	Analyze(ctx context.Context, q models.AnalyzeQuery) (*models.AnalyzeResponse, error)
}

// Renderer produces the PDF report bytes.
type Renderer interface {
	Render(req models.ExportRequest) ([]byte, error)
}

type AnalyzeHandler struct {
	analyzer Analyzer
	renderer Renderer
	logger   *logrus.Logger
}

func NewAnalyzeHandler(analyzer Analyzer, renderer Renderer, logger *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleAnalyze processes project analysis requests. An empty description
// is allowed and degrades to the default keyword set.
func (h *AnalyzeHandler) HandleAnalyze(c *gin.Context) {
	startTime := time.Now()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid analyze request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if len(req.Description) > 5000 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Description too long (max 5000 characters)", nil)
		return
	}

	query := models.AnalyzeQuery{
		Description:  strings.TrimSpace(req.Description),
		Filter:       req.Filter,
		Sort:         c.DefaultQuery("sort", services.SortRelevanceDesc),
		Jurisdiction: c.Query("jurisdiction"),
	}

	query.Limit = parseIntParam(c, "limit", defaultLimit)
	if query.Limit <= 0 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	query.Offset = parseIntParam(c, "offset", 0)
	if query.Offset < 0 {
		query.Offset = 0
	}
	query.MinYear = parseIntParam(c, "min_year", 0)
	query.MinRelevance = parseFloatParam(c, "min_relevance", 0.0)

	h.logger.WithFields(logrus.Fields{
		"description_length": len(query.Description),
		"filter":             query.Filter,
		"limit":              query.Limit,
		"offset":             query.Offset,
	}).Info("Processing analyze request")

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	response, err := h.analyzer.Analyze(ctx, query)
	if err != nil {
		h.logger.WithError(err).Error("Analysis failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Analysis failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"total":         response.TotalPatentsFound,
		"returned":      len(response.Patents),
		"response_time": time.Since(startTime).Milliseconds(),
	}).Info("Analyze request completed")

	c.JSON(http.StatusOK, response)
}

// HandleExportPDF renders a caller-supplied result set as a PDF report.
func (h *AnalyzeHandler) HandleExportPDF(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid export request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if strings.TrimSpace(req.ProjectDescription) == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Project description cannot be empty", nil)
		return
	}

	pdf, err := h.renderer.Render(req)
	if err != nil {
		h.logger.WithError(err).Error("PDF generation failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "PDF generation failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"patents":  len(req.Patents),
		"pdf_size": len(pdf),
	}).Info("PDF report generated")

	c.Header("Content-Disposition", "attachment; filename=patent_report.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseIntParam(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func parseFloatParam(c *gin.Context, name string, fallback float64) float64 {
	value, err := strconv.ParseFloat(c.DefaultQuery(name, strconv.FormatFloat(fallback, 'f', -1, 64)), 64)
	if err != nil {
		return fallback
	}
	return value
}
