package generation

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func questionsJSON(count int, qType string, options string) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		item := fmt.Sprintf(`{"questionText": "¿Pregunta %d?", "type": %q`, i+1, qType)
		if options != "" {
			item += `, "options": ` + options
		}
		items = append(items, item+"}")
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestSurveyParams_Normalize(t *testing.T) {
	params := SurveyParams{}
	require.NoError(t, params.Normalize())
	assert.Equal(t, DefaultQuestionCount, params.QuestionCount)

	params = SurveyParams{QuestionCount: 7}
	require.NoError(t, params.Normalize())
	assert.Equal(t, 7, params.QuestionCount)

	params = SurveyParams{QuestionCount: 4}
	err := params.Normalize()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestValidateFields(t *testing.T) {
	valid := json.RawMessage(`{
		"title": "Ley de Transparencia",
		"category": "Salud Pública",
		"proposed_questions": ["¿a?", "¿b?"]
	}`)

	fields, err := ValidateFields(valid)
	require.NoError(t, err)
	assert.Equal(t, "Salud Pública", fields.Category)

	_, err = ValidateFields(json.RawMessage(`{"category": "Deportes"}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	tooMany := json.RawMessage(`{"proposed_questions": ["1","2","3","4","5","6","7","8"]}`)
	_, err = ValidateFields(tooMany)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	_, err = ValidateFields(json.RawMessage(`not json`))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))
}

func TestValidateFields_EmptyCategoryAllowed(t *testing.T) {
	fields, err := ValidateFields(json.RawMessage(`{"title": "x"}`))
	require.NoError(t, err)
	assert.Empty(t, fields.Category)
}

func TestValidateBaseSurvey(t *testing.T) {
	valid := json.RawMessage(fmt.Sprintf(`{"title": "Consulta", "questions": %s}`,
		questionsJSON(10, "single-choice", `["Sí", "No", "No sé"]`)))

	survey, err := ValidateBaseSurvey(valid)
	require.NoError(t, err)
	assert.Len(t, survey.Questions, 10)

	// Wrong count.
	nine := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(9, "single-choice", `["Sí", "No", "No sé"]`)))
	_, err = ValidateBaseSurvey(nine)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	// Wrong type.
	open := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(10, "open-ended", "")))
	_, err = ValidateBaseSurvey(open)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	// Wrong option set.
	yesNo := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(10, "single-choice", `["Sí", "No"]`)))
	_, err = ValidateBaseSurvey(yesNo)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))
}

func TestValidateSurvey_CountBounds(t *testing.T) {
	within := json.RawMessage(fmt.Sprintf(`{"questions": %s}`, questionsJSON(8, "open-ended", "")))
	survey, err := ValidateSurvey(within, 8)
	require.NoError(t, err)
	assert.Len(t, survey.Questions, 8)

	below := json.RawMessage(fmt.Sprintf(`{"questions": %s}`, questionsJSON(4, "open-ended", "")))
	_, err = ValidateSurvey(below, 8)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	above := json.RawMessage(fmt.Sprintf(`{"questions": %s}`, questionsJSON(9, "open-ended", "")))
	_, err = ValidateSurvey(above, 8)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))
}

func TestValidateSurvey_QuestionShapes(t *testing.T) {
	// Choice questions need options.
	noOptions := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(5, "multiple-choice", "")))
	_, err := ValidateSurvey(noOptions, 12)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	// Unknown types are rejected.
	unknown := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(5, "matrix", "")))
	_, err = ValidateSurvey(unknown, 12)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))

	// Rating and open-ended need no options.
	rating := json.RawMessage(fmt.Sprintf(`{"questions": %s}`,
		questionsJSON(5, "rating", "")))
	_, err = ValidateSurvey(rating, 12)
	assert.NoError(t, err)
}
