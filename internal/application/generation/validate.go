package generation

import (
	"encoding/json"
	"fmt"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// DefaultQuestionCount is the parametrized survey question limit used when
// the caller does not specify one.
const DefaultQuestionCount = 12

// MinQuestionCount is the lower bound every parametrized survey must meet.
const MinQuestionCount = 5

// BaseQuestionCount is the fixed size of the base deliberation survey.
const BaseQuestionCount = 10

// SurveyParams are the caller-supplied parameters of a parametrized survey
// generation request.
type SurveyParams struct {
	TargetAudience    string   `json:"targetAudience"`
	Objective         string   `json:"objective"`
	Context           string   `json:"context"`
	QuestionCount     int      `json:"surveyQuestionCount"`
	UserInstructions  string   `json:"userInstructions"`
	RequiredQuestions []string `json:"requiredQuestions"`
}

// Normalize fills in defaults and validates the parameter shape.
func (p *SurveyParams) Normalize() error {
	if p.QuestionCount == 0 {
		p.QuestionCount = DefaultQuestionCount
	}
	if p.QuestionCount < MinQuestionCount {
		return apperrors.NewValidationError(fmt.Sprintf("surveyQuestionCount must be at least %d", MinQuestionCount))
	}
	return nil
}

// GeneratedSurvey is the parsed output of a survey generation call. Metadata
// fields are only populated in base mode.
type GeneratedSurvey struct {
	Title           string                    `json:"title,omitempty"`
	About           string                    `json:"about,omitempty"`
	TargetAudience  string                    `json:"targetAudience,omitempty"`
	WelcomeTitle    string                    `json:"welcomeTitle,omitempty"`
	WelcomeSubtitle string                    `json:"welcomeSubtitle,omitempty"`
	Questions       []entities.SurveyQuestion `json:"questions"`
}

// ValidateFields parses and validates a generated fields payload. The
// category must belong to the predefined list and the proposed questions may
// not exceed seven entries.
func ValidateFields(raw json.RawMessage) (*entities.GeneratedFields, error) {
	fields := &entities.GeneratedFields{}
	if err := json.Unmarshal(raw, fields); err != nil {
		return nil, apperrors.NewSchemaViolationError("generated fields are not valid JSON", err)
	}

	if fields.Category != "" && !entities.IsValidCategory(fields.Category) {
		return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("category %q is not a valid project category", fields.Category), nil)
	}
	if len(fields.ProposedQuestions) > 7 {
		return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("proposed_questions has %d entries, maximum is 7", len(fields.ProposedQuestions)), nil)
	}

	return fields, nil
}

// ValidateBaseSurvey parses and validates a base-mode survey payload: exactly
// ten single-choice questions with the fixed Sí/No/No sé answer set.
func ValidateBaseSurvey(raw json.RawMessage) (*GeneratedSurvey, error) {
	survey := &GeneratedSurvey{}
	if err := json.Unmarshal(raw, survey); err != nil {
		return nil, apperrors.NewSchemaViolationError("generated survey is not valid JSON", err)
	}

	if len(survey.Questions) != BaseQuestionCount {
		return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("base survey has %d questions, expected exactly %d", len(survey.Questions), BaseQuestionCount), nil)
	}

	for i, q := range survey.Questions {
		if q.QuestionText == "" {
			return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d has no text", i+1), nil)
		}
		if q.Type != entities.QuestionTypeSingleChoice {
			return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d has type %q, base surveys only allow %q", i+1, q.Type, entities.QuestionTypeSingleChoice), nil)
		}
		if !equalOptions(q.Options, baseSurveyOptions) {
			return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d options must be exactly %v", i+1, baseSurveyOptions), nil)
		}
	}

	return survey, nil
}

// ValidateSurvey parses and validates a parametrized survey payload against
// the requested question count.
func ValidateSurvey(raw json.RawMessage, questionCount int) (*GeneratedSurvey, error) {
	survey := &GeneratedSurvey{}
	if err := json.Unmarshal(raw, survey); err != nil {
		return nil, apperrors.NewSchemaViolationError("generated survey is not valid JSON", err)
	}

	if len(survey.Questions) < MinQuestionCount || len(survey.Questions) > questionCount {
		return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("survey has %d questions, expected between %d and %d", len(survey.Questions), MinQuestionCount, questionCount), nil)
	}

	for i, q := range survey.Questions {
		if q.QuestionText == "" {
			return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d has no text", i+1), nil)
		}
		switch q.Type {
		case entities.QuestionTypeMultipleChoice, entities.QuestionTypeSingleChoice:
			if len(q.Options) == 0 {
				return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d of type %q has no options", i+1, q.Type), nil)
			}
		case entities.QuestionTypeOpenEnded, entities.QuestionTypeRating:
		default:
			return nil, apperrors.NewSchemaViolationError(fmt.Sprintf("question %d has unsupported type %q", i+1, q.Type), nil)
		}
	}

	return survey, nil
}

func equalOptions(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
