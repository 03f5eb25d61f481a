// backend/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/reclaimip/backend/internal/api/handlers"
	"github.com/reclaimip/backend/internal/catalog"
	"github.com/reclaimip/backend/internal/concepts"
	"github.com/reclaimip/backend/internal/config"
	"github.com/reclaimip/backend/internal/health"
	"github.com/reclaimip/backend/internal/middleware"
	"github.com/reclaimip/backend/internal/report"
	"github.com/reclaimip/backend/internal/services"
	"github.com/reclaimip/backend/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.ValidateSavings(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Keyword extraction: external service when configured, stoplist
	// tokenizer otherwise. The API extractor degrades to the fallback on
	// its own, so requests never fail on the extraction step.
	fallbackExtractor := concepts.NewFallbackExtractor()
	var extractor concepts.Extractor = fallbackExtractor
	if cfg.ConceptsConfigured() {
		client := concepts.NewClient(cfg.Concepts.BaseURL, cfg.Concepts.APIKey, logger)
		extractor = concepts.NewAPIExtractor(client, fallbackExtractor, logger)
		logger.Info("Concept extraction service configured")
	} else {
		logger.Info("No concept extraction service configured, using fallback extractor")
	}

	// Catalog: live search wrapped with the curated fallback, or the
	// curated catalog alone.
	staticProvider := catalog.NewStaticProvider()
	var provider catalog.Provider = staticProvider
	if cfg.LiveSearchConfigured() {
		liveProvider, err := catalog.NewOpenSearchProvider(catalog.OpenSearchConfig{
			Addresses: cfg.Search.Addresses,
			Index:     cfg.Search.Index,
			Username:  cfg.Search.Username,
			Password:  cfg.Search.Password,
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize live patent search, using curated catalog only")
		} else {
			provider = catalog.NewFallbackProvider(liveProvider, staticProvider, logger)
			logger.Info("Live patent search configured")
		}
	} else {
		logger.WithField("catalog_size", catalog.CatalogSize()).Info("Serving from curated catalog")
	}

	analyzeService := services.NewAnalyzeService(extractor, provider, cfg.Savings.PerPatent, cfg.Savings.Currency, logger)
	renderer := report.NewRenderer()
	checker := health.NewChecker(cfg, logger)

	analyzeHandler := handlers.NewAnalyzeHandler(analyzeService, renderer, logger)
	healthHandler := handlers.NewHealthHandler(checker)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.NewRateLimiter(cfg.Server.RateLimit).RateLimit())

	router.GET("/", healthHandler.HandleRoot)
	router.GET("/health", healthHandler.HandleHealth)
	router.POST("/analyze", analyzeHandler.HandleAnalyze)
	router.POST("/export-pdf", analyzeHandler.HandleExportPDF)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	logger.Info("Server stopped")
}
