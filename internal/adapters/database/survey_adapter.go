package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

var surveyColumns = []any{
	"id", "project_id", "title", "about", "type", "target_audience",
	"welcome_title", "welcome_subtitle", "objective", "context",
	"user_instructions", "required_questions", "schema", "questions",
	"responses_count", "closed_at", "created_at", "updated_at",
}

// SurveyAdapter implements SurveyRepository. Surveys are append-only, so the
// adapter exposes no update.
type SurveyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSurveyAdapter creates a new survey adapter
func NewSurveyAdapter(client *postgres.Client) repositories.SurveyRepository {
	return &SurveyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new survey record
func (a *SurveyAdapter) Create(ctx context.Context, survey *entities.Survey) error {
	questionsJSON, err := json.Marshal(survey.Questions)
	if err != nil {
		return apperrors.NewInternalError("failed to encode survey questions", err)
	}

	record := goqu.Record{
		"id":                 survey.ID,
		"project_id":         survey.ProjectID,
		"title":              survey.Title,
		"about":              sql.NullString{String: survey.About, Valid: survey.About != ""},
		"type":               survey.Type,
		"target_audience":    sql.NullString{String: survey.TargetAudience, Valid: survey.TargetAudience != ""},
		"welcome_title":      sql.NullString{String: survey.WelcomeTitle, Valid: survey.WelcomeTitle != ""},
		"welcome_subtitle":   sql.NullString{String: survey.WelcomeSubtitle, Valid: survey.WelcomeSubtitle != ""},
		"objective":          sql.NullString{String: survey.Objective, Valid: survey.Objective != ""},
		"context":            sql.NullString{String: survey.Context, Valid: survey.Context != ""},
		"user_instructions":  sql.NullString{String: survey.UserInstructions, Valid: survey.UserInstructions != ""},
		"required_questions": pq.Array(survey.RequiredQuestions),
		"schema":             sql.NullString{String: string(survey.Schema), Valid: len(survey.Schema) > 0},
		"questions":          string(questionsJSON),
		"responses_count":    survey.ResponsesCount,
		"closed_at":          survey.ClosedAt,
		"created_at":         survey.CreatedAt,
		"updated_at":         survey.UpdatedAt,
	}

	query, args, err := a.db.Insert("project_surveys").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build survey insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create survey", err)
	}

	return nil
}

// GetByID retrieves a survey by ID
func (a *SurveyAdapter) GetByID(ctx context.Context, id string) (*entities.Survey, error) {
	query, args, err := a.db.Select(surveyColumns...).
		From("project_surveys").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build survey query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	survey, err := scanSurvey(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("survey with id %s not found", id))
	}
	if err != nil {
		return nil, err
	}

	return survey, nil
}

// ListByProjectID retrieves all surveys of a project, newest first
func (a *SurveyAdapter) ListByProjectID(ctx context.Context, projectID string) ([]*entities.Survey, error) {
	query, args, err := a.db.Select(surveyColumns...).
		From("project_surveys").
		Where(goqu.Ex{"project_id": projectID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build survey list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list surveys", err)
	}
	defer rows.Close()

	surveys := []*entities.Survey{}
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, survey)
	}

	return surveys, nil
}

// ListAnswers retrieves all answer submissions of a survey
func (a *SurveyAdapter) ListAnswers(ctx context.Context, surveyID string) ([]*entities.SurveyAnswer, error) {
	query, args, err := a.db.Select("id", "survey_id", "answers", "created_at").
		From("project_survey_answers").
		Where(goqu.Ex{"survey_id": surveyID}).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build survey answers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list survey answers", err)
	}
	defer rows.Close()

	answers := []*entities.SurveyAnswer{}
	for rows.Next() {
		answer := &entities.SurveyAnswer{}
		var raw []byte
		if err := rows.Scan(&answer.ID, &answer.SurveyID, &raw, &answer.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan survey answer", err)
		}
		answer.Answers = raw
		answers = append(answers, answer)
	}

	return answers, nil
}

func scanSurvey(row rowScanner) (*entities.Survey, error) {
	survey := &entities.Survey{}
	var about, targetAudience, welcomeTitle, welcomeSubtitle sql.NullString
	var objective, context, userInstructions, schema sql.NullString
	var questionsJSON []byte
	var closedAt sql.NullTime

	err := row.Scan(
		&survey.ID,
		&survey.ProjectID,
		&survey.Title,
		&about,
		&survey.Type,
		&targetAudience,
		&welcomeTitle,
		&welcomeSubtitle,
		&objective,
		&context,
		&userInstructions,
		pq.Array(&survey.RequiredQuestions),
		&schema,
		&questionsJSON,
		&survey.ResponsesCount,
		&closedAt,
		&survey.CreatedAt,
		&survey.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan survey", err)
	}

	survey.About = about.String
	survey.TargetAudience = targetAudience.String
	survey.WelcomeTitle = welcomeTitle.String
	survey.WelcomeSubtitle = welcomeSubtitle.String
	survey.Objective = objective.String
	survey.Context = context.String
	survey.UserInstructions = userInstructions.String
	if schema.Valid {
		survey.Schema = []byte(schema.String)
	}
	if closedAt.Valid {
		survey.ClosedAt = &closedAt.Time
	}
	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &survey.Questions); err != nil {
			return nil, apperrors.NewInternalError("failed to decode survey questions", err)
		}
	}

	return survey, nil
}
