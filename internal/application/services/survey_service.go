package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/virtuali-gob/backend/internal/application/generation"
	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// SurveyService generates deliberation surveys from a project's primary
// document and persists accepted versions. Saved surveys are immutable:
// every save creates a new record.
type SurveyService struct {
	projects  repositories.ProjectRepository
	surveys   repositories.SurveyRepository
	handles   *DocumentHandleService
	generator providers.DocumentGenerator
}

// NewSurveyService creates a new survey service.
func NewSurveyService(
	projects repositories.ProjectRepository,
	surveys repositories.SurveyRepository,
	handles *DocumentHandleService,
	generator providers.DocumentGenerator,
) *SurveyService {
	return &SurveyService{
		projects:  projects,
		surveys:   surveys,
		handles:   handles,
		generator: generator,
	}
}

// GenerateBase generates the fixed base deliberation survey: exactly ten
// single-choice Sí/No/No sé questions plus survey metadata.
func (s *SurveyService) GenerateBase(ctx context.Context, projectID string) (*generation.GeneratedSurvey, error) {
	raw, err := s.generate(ctx, projectID, generation.BaseSurveyPrompt(), generation.BaseSurveySchema())
	if err != nil {
		return nil, err
	}
	return generation.ValidateBaseSurvey(raw)
}

// Generate generates a parametrized survey from the caller's parameters.
func (s *SurveyService) Generate(ctx context.Context, projectID string, params generation.SurveyParams) (*generation.GeneratedSurvey, error) {
	if err := params.Normalize(); err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, projectID, generation.SurveyPrompt(params), generation.SurveySchema(params.QuestionCount))
	if err != nil {
		return nil, err
	}
	return generation.ValidateSurvey(raw, params.QuestionCount)
}

// Regenerate revises a previously generated survey according to the user's
// edit request, keeping the original parameters.
func (s *SurveyService) Regenerate(ctx context.Context, projectID string, originalSurvey json.RawMessage, userEditRequest string, params generation.SurveyParams) (*generation.GeneratedSurvey, error) {
	if userEditRequest == "" {
		return nil, apperrors.NewValidationError("userEditRequest is required")
	}
	if len(originalSurvey) == 0 {
		return nil, apperrors.NewValidationError("originalSurvey is required")
	}
	if err := params.Normalize(); err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, projectID, generation.RegenerateSurveyPrompt(originalSurvey, userEditRequest, params), generation.SurveySchema(params.QuestionCount))
	if err != nil {
		return nil, err
	}
	return generation.ValidateSurvey(raw, params.QuestionCount)
}

func (s *SurveyService) generate(ctx context.Context, projectID, prompt string, schema map[string]any) (json.RawMessage, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	handle, err := s.handles.GetOrCreate(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.generator.WaitUntilActive(ctx, handle.Name); err != nil {
		return nil, err
	}

	return s.generator.GenerateStructured(ctx, handle.URI, handle.MIMEType, prompt, schema)
}

// Save persists an accepted survey as a new immutable record.
func (s *SurveyService) Save(ctx context.Context, projectID string, survey *entities.Survey) (*entities.Survey, error) {
	if survey == nil {
		return nil, apperrors.NewValidationError("survey payload is required")
	}
	if len(survey.Questions) == 0 {
		return nil, apperrors.NewValidationError("survey must contain at least one question")
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	survey.ID = uuid.New().String()
	survey.ProjectID = projectID
	survey.ResponsesCount = 0
	survey.ClosedAt = nil
	survey.CreatedAt = now
	survey.UpdatedAt = now
	if survey.Type == "" {
		survey.Type = entities.SurveyTypeCustom
	}

	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

// List returns all surveys of a project, newest first.
func (s *SurveyService) List(ctx context.Context, projectID string) ([]*entities.Survey, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.surveys.ListByProjectID(ctx, projectID)
}

// GetByID returns a single survey together with its answer submissions.
func (s *SurveyService) GetByID(ctx context.Context, surveyID string) (*entities.Survey, []*entities.SurveyAnswer, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.surveys.ListAnswers(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	return survey, answers, nil
}
