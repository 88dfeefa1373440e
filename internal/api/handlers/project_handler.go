package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/virtuali-gob/backend/internal/application/services"
	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
)

const maxProjectPDFSize = 32 << 20

// ProjectHandler handles project lifecycle requests.
type ProjectHandler struct {
	service *services.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects handles GET /api/projects
// The category query parameter is an index into the fixed category list.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProjectFilter{}

	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		idx, err := strconv.Atoi(categoryParam)
		categories := entities.Categories()
		if err != nil || idx < 0 || idx >= len(categories) {
			respondWithError(w, http.StatusBadRequest, "invalid category index")
			return
		}
		filter.Category = categories[idx]
	}

	if draftParam := r.URL.Query().Get("draft"); draftParam != "" {
		draft, err := strconv.ParseBool(draftParam)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid draft parameter")
			return
		}
		filter.Draft = &draft
	}

	projects, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
	})
}

// CreateProject handles POST /api/projects
// Accepts a multipart form carrying the project fields and the primary PDF.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProjectPDFSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("projectPdf")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "projectPdf file is required")
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read projectPdf file")
		return
	}

	input := services.CreateProjectInput{
		Name:           r.FormValue("name"),
		Slug:           r.FormValue("slug"),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		AuthorFullname: r.FormValue("authorFullname"),
		PDF:            pdf,
		PDFContentType: header.Header.Get("Content-Type"),
	}

	project, kb, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project initialized successfully",
		"project": map[string]interface{}{
			"id":             project.ID,
			"code":           project.Code,
			"name":           project.Name,
			"slug":           project.Slug,
			"authorFullname": project.AuthorFullname,
		},
		"knowledgeBase": map[string]interface{}{
			"uuid":   kb.UUID,
			"name":   kb.Name,
			"status": kb.Status,
		},
	})
}

// GetCategories handles GET /api/projects/categories
func (h *ProjectHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.service.Categories(),
	})
}

// GetProject handles GET /api/projects/{projectId}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.GetByID(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"project": project,
	})
}

// PublishProject handles POST /api/projects/{projectId}/publish
func (h *ProjectHandler) PublishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Publish(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project published successfully",
		"project": project,
	})
}

// UnpublishProject handles POST /api/projects/{projectId}/unpublish
func (h *ProjectHandler) UnpublishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Unpublish(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project unpublished successfully",
		"project": project,
	})
}

// ListKnowledgeBaseFiles handles GET /api/projects/{projectId}/files/knowledge-base
func (h *ProjectHandler) ListKnowledgeBaseFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListKnowledgeBaseFiles(r.Context(), r.PathValue("projectId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"files": files,
		"count": len(files),
	})
}
