package repositories

import (
	"context"

	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// SurveyRepository defines the interface for survey persistence. Surveys
// are append-only: there is no update operation.
type SurveyRepository interface {
	Create(ctx context.Context, survey *entities.Survey) error
	GetByID(ctx context.Context, id string) (*entities.Survey, error)
	ListByProjectID(ctx context.Context, projectID string) ([]*entities.Survey, error)
	ListAnswers(ctx context.Context, surveyID string) ([]*entities.SurveyAnswer, error)
}
