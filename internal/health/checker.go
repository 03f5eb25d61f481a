package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/reclaimip/backend/internal/config"
	"github.com/sirupsen/logrus"
)

// Checker probes the optional external collaborators. Neither service is
// required for the API to work, so an unhealthy probe only means degraded
// data freshness.
type Checker struct {
	cfg    *config.Config
	client *http.Client
	logger *logrus.Logger
}

func NewChecker(cfg *config.Config, logger *logrus.Logger) *Checker {
	return &Checker{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ServiceHealth represents the health status of one external service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	LiveData bool            `json:"live_data"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckConcepts probes the concept-extraction endpoint
func (h *Checker) CheckConcepts() ServiceHealth {
	return h.probe("concepts", h.cfg.Concepts.BaseURL+"/health")
}

// CheckSearch probes the patent-search backend
func (h *Checker) CheckSearch() ServiceHealth {
	return h.probe("patent-search", h.cfg.Search.Addresses[0])
}

func (h *Checker) probe(name, url string) ServiceHealth {
	start := time.Now()
	resp, err := h.client.Get(url)
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
	} else {
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			status = "unhealthy"
			errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}

	if status != "healthy" {
		h.logger.WithFields(logrus.Fields{
			"service": name,
			"error":   errorMsg,
		}).Warn("Health check failed")
	}

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll probes every configured external service. The API itself is
// always "healthy"; degraded means at least one live data source is down
// and its fallback is serving instead.
func (h *Checker) CheckAll() OverallHealth {
	var services []ServiceHealth
	if h.cfg.ConceptsConfigured() {
		services = append(services, h.CheckConcepts())
	}
	if h.cfg.LiveSearchConfigured() {
		services = append(services, h.CheckSearch())
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "degraded"
			break
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		LiveData: h.cfg.LiveSearchConfigured(),
		Services: services,
		Uptime:   h.uptime(),
	}
}

var startTime = time.Now()

func (h *Checker) uptime() string {
	return time.Since(startTime).String()
}
