package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/virtuali-gob/backend/internal/application/services"
	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// FieldsHandler handles AI field generation requests for projects.
type FieldsHandler struct {
	service *services.FieldExtractionService
}

// NewFieldsHandler creates a new fields handler.
func NewFieldsHandler(service *services.FieldExtractionService) *FieldsHandler {
	return &FieldsHandler{service: service}
}

// GenerateFields handles POST /api/projects/{projectId}/generate-fields
func (h *FieldsHandler) GenerateFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.service.Extract(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project fields generated successfully",
		"project": fields,
	})
}

type regenerateFieldsRequest struct {
	UserEditRequest          string          `json:"userEditRequest"`
	PreviousLawProjectFields json.RawMessage `json:"previousLawProjectFields"`
}

// RegenerateFields handles POST /api/projects/{projectId}/regenerate-fields
func (h *FieldsHandler) RegenerateFields(w http.ResponseWriter, r *http.Request) {
	var payload regenerateFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	fields, err := h.service.Regenerate(r.Context(), r.PathValue("projectId"), payload.PreviousLawProjectFields, payload.UserEditRequest)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"project": fields,
	})
}

// SaveFields handles PUT /api/projects/{projectId}/save-fields
func (h *FieldsHandler) SaveFields(w http.ResponseWriter, r *http.Request) {
	var payload entities.GeneratedFields
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	project, err := h.service.SaveFields(r.Context(), r.PathValue("projectId"), &payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project fields saved successfully",
		"project": map[string]interface{}{
			"id":                 project.ID,
			"title":              project.Title,
			"description":        project.Description,
			"summary":            project.Summary,
			"category":           project.Category,
			"content":            project.Content,
			"proposed_questions": project.ProposedQuestions,
		},
	})
}
