package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/virtuali-gob/backend/internal/application/generation"
	"github.com/virtuali-gob/backend/internal/application/services"
	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// SurveyHandler handles survey generation and persistence requests.
type SurveyHandler struct {
	service *services.SurveyService
}

// NewSurveyHandler creates a new survey handler.
func NewSurveyHandler(service *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{service: service}
}

// GenerateBaseSurvey handles POST /api/projects/{projectId}/surveys/generate-base
func (h *SurveyHandler) GenerateBaseSurvey(w http.ResponseWriter, r *http.Request) {
	survey, err := h.service.GenerateBase(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"survey": survey,
	})
}

// GenerateSurvey handles POST /api/projects/{projectId}/surveys/generate
func (h *SurveyHandler) GenerateSurvey(w http.ResponseWriter, r *http.Request) {
	var params generation.SurveyParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	survey, err := h.service.Generate(r.Context(), r.PathValue("projectId"), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"survey": survey,
	})
}

type regenerateSurveyRequest struct {
	UserEditRequest    string                  `json:"userEditRequest"`
	OriginalSurvey     json.RawMessage         `json:"originalSurvey"`
	OriginalParameters generation.SurveyParams `json:"originalParameters"`
}

// RegenerateSurvey handles POST /api/projects/{projectId}/surveys/regenerate
func (h *SurveyHandler) RegenerateSurvey(w http.ResponseWriter, r *http.Request) {
	var payload regenerateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	survey, err := h.service.Regenerate(r.Context(), r.PathValue("projectId"), payload.OriginalSurvey, payload.UserEditRequest, payload.OriginalParameters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"survey": survey,
	})
}

type saveSurveyRequest struct {
	Survey *entities.Survey `json:"survey"`
}

// SaveSurvey handles POST /api/projects/{projectId}/surveys
func (h *SurveyHandler) SaveSurvey(w http.ResponseWriter, r *http.Request) {
	var payload saveSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	survey, err := h.service.Save(r.Context(), r.PathValue("projectId"), payload.Survey)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Survey saved successfully",
		"survey":  survey,
	})
}

// ListSurveys handles GET /api/projects/{projectId}/surveys
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.service.List(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"surveys": surveys,
	})
}

// GetSurvey handles GET /api/projects/{projectId}/surveys/{surveyId}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	survey, answers, err := h.service.GetByID(r.Context(), r.PathValue("surveyId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"survey":  survey,
		"answers": answers,
	})
}
