package entities

import (
	"encoding/json"
	"time"
)

// Survey types.
const (
	SurveyTypeBase   = "base"
	SurveyTypeCustom = "custom"
)

// Question types a survey may contain.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeOpenEnded      = "open-ended"
	QuestionTypeRating         = "rating"
	QuestionTypeSingleChoice   = "single-choice"
)

// SurveyQuestion is a single generated questionnaire item.
type SurveyQuestion struct {
	QuestionText    string   `json:"questionText"`
	Type            string   `json:"type"`
	Options         []string `json:"options,omitempty"`
	Required        bool     `json:"required"`
	OpenTextEnabled bool     `json:"openTextEnabled,omitempty"`
	HelpText        string   `json:"helpText,omitempty"`
	MaxLength       int      `json:"maxLength,omitempty"`
	Scale           int      `json:"scale,omitempty"`
}

// Survey captures an accepted generated questionnaire together with the
// parameters that produced it, for later regeneration and audit. Surveys
// are immutable: every save creates a new record.
type Survey struct {
	ID                string           `json:"id" db:"id"`
	ProjectID         string           `json:"project_id" db:"project_id"`
	Title             string           `json:"title" db:"title"`
	About             string           `json:"about" db:"about"`
	Type              string           `json:"type" db:"type"`
	TargetAudience    string           `json:"target_audience" db:"target_audience"`
	WelcomeTitle      string           `json:"welcome_title" db:"welcome_title"`
	WelcomeSubtitle   string           `json:"welcome_subtitle" db:"welcome_subtitle"`
	Objective         string           `json:"objective" db:"objective"`
	Context           string           `json:"context" db:"context"`
	UserInstructions  string           `json:"user_instructions" db:"user_instructions"`
	RequiredQuestions []string         `json:"required_questions" db:"required_questions"`
	Schema            json.RawMessage  `json:"schema,omitempty" db:"schema"`
	Questions         []SurveyQuestion `json:"questions" db:"questions"`
	ResponsesCount    int              `json:"responses_count" db:"responses_count"`
	ClosedAt          *time.Time       `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// SurveyAnswer is a single response submission referencing a survey.
type SurveyAnswer struct {
	ID        string          `json:"id" db:"id"`
	SurveyID  string          `json:"survey_id" db:"survey_id"`
	Answers   json.RawMessage `json:"answers" db:"answers"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
