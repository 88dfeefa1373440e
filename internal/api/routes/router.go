package routes

import (
	"net/http"

	"github.com/virtuali-gob/backend/internal/api/handlers"
	"github.com/virtuali-gob/backend/internal/api/middleware"
	"github.com/virtuali-gob/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	projectHandler       *handlers.ProjectHandler
	fieldsHandler        *handlers.FieldsHandler
	surveyHandler        *handlers.SurveyHandler
	knowledgeBaseHandler *handlers.KnowledgeBaseHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	fieldsHandler *handlers.FieldsHandler,
	surveyHandler *handlers.SurveyHandler,
	knowledgeBaseHandler *handlers.KnowledgeBaseHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		projectHandler:       projectHandler,
		fieldsHandler:        fieldsHandler,
		surveyHandler:        surveyHandler,
		knowledgeBaseHandler: knowledgeBaseHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Project endpoints
	r.mux.HandleFunc("GET /api/projects", r.projectHandler.ListProjects)
	r.mux.HandleFunc("POST /api/projects", r.projectHandler.CreateProject)
	r.mux.HandleFunc("GET /api/projects/categories", r.projectHandler.GetCategories)
	r.mux.HandleFunc("GET /api/projects/{projectId}", r.projectHandler.GetProject)
	r.mux.HandleFunc("POST /api/projects/{projectId}/publish", r.projectHandler.PublishProject)
	r.mux.HandleFunc("POST /api/projects/{projectId}/unpublish", r.projectHandler.UnpublishProject)
	r.mux.HandleFunc("GET /api/projects/{projectId}/files/knowledge-base", r.projectHandler.ListKnowledgeBaseFiles)

	// AI field generation endpoints
	r.mux.HandleFunc("POST /api/projects/{projectId}/generate-fields", r.fieldsHandler.GenerateFields)
	r.mux.HandleFunc("POST /api/projects/{projectId}/regenerate-fields", r.fieldsHandler.RegenerateFields)
	r.mux.HandleFunc("PUT /api/projects/{projectId}/save-fields", r.fieldsHandler.SaveFields)

	// Survey endpoints
	r.mux.HandleFunc("POST /api/projects/{projectId}/surveys", r.surveyHandler.SaveSurvey)
	r.mux.HandleFunc("GET /api/projects/{projectId}/surveys", r.surveyHandler.ListSurveys)
	r.mux.HandleFunc("POST /api/projects/{projectId}/surveys/generate", r.surveyHandler.GenerateSurvey)
	r.mux.HandleFunc("POST /api/projects/{projectId}/surveys/generate-base", r.surveyHandler.GenerateBaseSurvey)
	r.mux.HandleFunc("POST /api/projects/{projectId}/surveys/regenerate", r.surveyHandler.RegenerateSurvey)
	r.mux.HandleFunc("GET /api/projects/{projectId}/surveys/{surveyId}", r.surveyHandler.GetSurvey)

	// Knowledge base endpoints
	r.mux.HandleFunc("GET /api/projects/{projectId}/knowledge-base/status", r.knowledgeBaseHandler.GetStatus)
	r.mux.HandleFunc("GET /api/projects/{projectId}/knowledge-base/ready", r.knowledgeBaseHandler.CheckReady)
	r.mux.HandleFunc("POST /api/projects/{projectId}/knowledge-base/retrieve", r.knowledgeBaseHandler.Retrieve)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
