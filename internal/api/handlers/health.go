package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reclaimip/backend/internal/health"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleRoot returns the service banner
func (h *HealthHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Patent Intelligence Platform API",
		"status":  "running",
	})
}

// HandleHealth reports liveness plus the state of the optional external
// data sources.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll()
	c.JSON(http.StatusOK, overall)
}
