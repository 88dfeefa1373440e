package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/virtuali-gob/backend/internal/application/generation"
	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// FieldExtractionService generates the structured fields of a law project
// from its primary document and persists caller-approved values.
type FieldExtractionService struct {
	projects  repositories.ProjectRepository
	handles   *DocumentHandleService
	generator providers.DocumentGenerator
}

// NewFieldExtractionService creates a new field extraction service.
func NewFieldExtractionService(
	projects repositories.ProjectRepository,
	handles *DocumentHandleService,
	generator providers.DocumentGenerator,
) *FieldExtractionService {
	return &FieldExtractionService{
		projects:  projects,
		handles:   handles,
		generator: generator,
	}
}

// Extract generates a fresh fields object from the project's primary
// document. The result is returned to the caller for review, not persisted.
func (s *FieldExtractionService) Extract(ctx context.Context, projectID string) (*entities.GeneratedFields, error) {
	return s.generate(ctx, projectID, func() string {
		return generation.FieldsPrompt()
	})
}

// Regenerate produces an updated fields object from the previous one and a
// free-text edit request.
func (s *FieldExtractionService) Regenerate(ctx context.Context, projectID string, previousFields json.RawMessage, userEditRequest string) (*entities.GeneratedFields, error) {
	if userEditRequest == "" {
		return nil, apperrors.NewValidationError("userEditRequest is required")
	}
	if len(previousFields) == 0 {
		return nil, apperrors.NewValidationError("previousLawProjectFields is required")
	}

	return s.generate(ctx, projectID, func() string {
		return generation.RegenerateFieldsPrompt(previousFields, userEditRequest)
	})
}

func (s *FieldExtractionService) generate(ctx context.Context, projectID string, prompt func() string) (*entities.GeneratedFields, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	handle, err := s.handles.GetOrCreate(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.generator.WaitUntilActive(ctx, handle.Name); err != nil {
		return nil, err
	}

	raw, err := s.generator.GenerateStructured(ctx, handle.URI, handle.MIMEType, prompt(), generation.FieldsSchema())
	if err != nil {
		return nil, err
	}

	fields, err := generation.ValidateFields(raw)
	if err != nil {
		return nil, err
	}

	fields.ProjectID = project.ID
	return fields, nil
}

// SaveFields merges the provided non-empty fields onto the stored project
// and forces its status to ready. Fields not provided are left unchanged.
// The generator is never called here.
func (s *FieldExtractionService) SaveFields(ctx context.Context, projectID string, fields *entities.GeneratedFields) (*entities.Project, error) {
	if fields == nil {
		return nil, apperrors.NewValidationError("fields payload is required")
	}
	if fields.Category != "" && !entities.IsValidCategory(fields.Category) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("category %q is not a valid project category", fields.Category))
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if fields.Title != "" {
		project.Title = fields.Title
	}
	if fields.Description != "" {
		project.Description = fields.Description
	}
	if fields.Summary != "" {
		project.Summary = fields.Summary
	}
	if fields.Category != "" {
		project.Category = fields.Category
	}
	if !fields.Content.IsEmpty() {
		project.Content = fields.Content
	}
	if fields.ProposedQuestions != nil {
		project.ProposedQuestions = fields.ProposedQuestions
	}
	project.Status = entities.ProjectStatusReady

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}
