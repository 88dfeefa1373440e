package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/virtuali-gob/backend/internal/adapters/cache"
	"github.com/virtuali-gob/backend/internal/adapters/database"
	"github.com/virtuali-gob/backend/internal/adapters/storage"
	"github.com/virtuali-gob/backend/internal/api/handlers"
	"github.com/virtuali-gob/backend/internal/api/middleware"
	"github.com/virtuali-gob/backend/internal/api/routes"
	"github.com/virtuali-gob/backend/internal/application/services"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/gemini"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/gradient"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/postgres"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/redis"
	"github.com/virtuali-gob/backend/internal/infrastructure/observability"
	"github.com/virtuali-gob/backend/pkg/config"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Initialize OpenTelemetry if enabled
	var otelShutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenTelemetry: %v", err)
		} else {
			otelShutdown = shutdown
			log.Println("OpenTelemetry initialized successfully")
		}
	}
	defer func() {
		if otelShutdown != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down OpenTelemetry: %v", err)
			}
		}
	}()

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Printf("Warning: Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	dbClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()
	log.Println("Connected to PostgreSQL database")

	// Initialize Redis client (optional, continue without cache on failure)
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis, continuing without cache: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Connected to Redis cache")
	}

	// Initialize object storage
	blobStore, err := storage.NewSpacesAdapter(ctx, &cfg.Spaces)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	log.Println("Connected to object storage")

	// Initialize AI generation client
	geminiClient, err := gemini.NewClient(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialize generation client: %v", err)
	}

	// Initialize knowledge base indexing client
	gradientClient, err := gradient.NewClient(&cfg.Gradient)
	if err != nil {
		log.Fatalf("Failed to initialize knowledge base client: %v", err)
	}

	// Initialize repositories
	projectRepo := database.NewProjectAdapter(dbClient)
	documentHandleRepo := database.NewDocumentHandleAdapter(dbClient)
	knowledgeBaseRepo := database.NewKnowledgeBaseAdapter(dbClient)
	surveyRepo := database.NewSurveyAdapter(dbClient)

	// Initialize services
	documentHandleService := services.NewDocumentHandleService(documentHandleRepo, projectRepo, blobStore, geminiClient)
	fieldExtractionService := services.NewFieldExtractionService(projectRepo, documentHandleService, geminiClient)
	surveyService := services.NewSurveyService(projectRepo, surveyRepo, documentHandleService, geminiClient)
	knowledgeBaseService := services.NewKnowledgeBaseService(knowledgeBaseRepo, gradientClient)
	projectService := services.NewProjectService(projectRepo, knowledgeBaseRepo, blobStore, gradientClient, cfg.Spaces.Bucket, cfg.Gradient.SpacesRegion)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	fieldsHandler := handlers.NewFieldsHandler(fieldExtractionService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	knowledgeBaseHandler := handlers.NewKnowledgeBaseHandler(knowledgeBaseService)

	// Initialize cache middleware if cache is available
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("HTTP response caching enabled")
	}

	// Setup routes
	router := routes.NewRouter(
		projectHandler,
		fieldsHandler,
		surveyHandler,
		knowledgeBaseHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server. Generation endpoints wait on document processing,
	// so the write timeout has to cover the full poll window.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.PollTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
