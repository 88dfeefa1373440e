package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/virtuali-gob/backend/internal/application/services"
)

// KnowledgeBaseHandler handles knowledge base status and retrieval requests.
type KnowledgeBaseHandler struct {
	service *services.KnowledgeBaseService
}

// NewKnowledgeBaseHandler creates a new knowledge base handler.
func NewKnowledgeBaseHandler(service *services.KnowledgeBaseService) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{service: service}
}

// GetStatus handles GET /api/projects/{projectId}/knowledge-base/status
func (h *KnowledgeBaseHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Status(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

// CheckReady handles GET /api/projects/{projectId}/knowledge-base/ready
func (h *KnowledgeBaseHandler) CheckReady(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.RefreshStatus(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"ready":         status.Ready,
		"knowledgeBase": status.Info,
	})
}

type retrieveRequest struct {
	Query      string  `json:"query"`
	NumResults int     `json:"num_results"`
	Alpha      float64 `json:"alpha"`
}

// Retrieve handles POST /api/projects/{projectId}/knowledge-base/retrieve
func (h *KnowledgeBaseHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	var payload retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	results, err := h.service.Retrieve(r.Context(), r.PathValue("projectId"), payload.Query, payload.NumResults, payload.Alpha)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}
