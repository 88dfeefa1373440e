package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtuali-gob/backend/internal/application/generation"
	"github.com/virtuali-gob/backend/internal/domain/entities"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func baseSurveyJSON(questionCount int) json.RawMessage {
	questions := make([]string, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		questions = append(questions, fmt.Sprintf(
			`{"questionText": "¿Pregunta %d?", "type": "single-choice", "options": ["Sí", "No", "No sé"], "required": true, "openTextEnabled": false}`, i+1))
	}
	return json.RawMessage(fmt.Sprintf(`{
		"title": "Consulta ciudadana",
		"about": "Sobre el proyecto",
		"targetAudience": "Ciudadanía general",
		"welcomeTitle": "Bienvenido",
		"welcomeSubtitle": "Tu opinión importa",
		"questions": [%s]
	}`, strings.Join(questions, ",")))
}

func customSurveyJSON(questionCount int) json.RawMessage {
	questions := make([]string, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		questions = append(questions, fmt.Sprintf(
			`{"questionText": "¿Pregunta %d?", "type": "open-ended", "required": false}`, i+1))
	}
	return json.RawMessage(fmt.Sprintf(`{"questions": [%s]}`, strings.Join(questions, ",")))
}

func newSurveyFixture(t *testing.T, project *entities.Project, generated json.RawMessage) (*SurveyService, *fakeSurveyRepo, *fakeGenerator) {
	t.Helper()

	blobs := newFakeBlobStore()
	blobs.objects[project.PrimaryDocumentKey()] = []byte("%PDF-1.4")

	projects := newFakeProjectRepo(project)
	surveys := newFakeSurveyRepo()
	generator := &fakeGenerator{generateResult: generated}
	handles := NewDocumentHandleService(newFakeDocumentHandleRepo(), projects, blobs, generator)

	return NewSurveyService(projects, surveys, handles, generator), surveys, generator
}

func TestGenerateBase_TenFixedQuestions(t *testing.T) {
	project := testProject()
	svc, _, _ := newSurveyFixture(t, project, baseSurveyJSON(10))

	survey, err := svc.GenerateBase(context.Background(), project.ID)
	require.NoError(t, err)

	assert.Equal(t, "Consulta ciudadana", survey.Title)
	require.Len(t, survey.Questions, 10)
	for _, q := range survey.Questions {
		assert.Equal(t, entities.QuestionTypeSingleChoice, q.Type)
		assert.Equal(t, []string{"Sí", "No", "No sé"}, q.Options)
	}
}

func TestGenerateBase_RejectsWrongQuestionCount(t *testing.T) {
	project := testProject()
	svc, _, _ := newSurveyFixture(t, project, baseSurveyJSON(9))

	_, err := svc.GenerateBase(context.Background(), project.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSchemaViolation))
}

func TestGenerate_DefaultsQuestionCount(t *testing.T) {
	project := testProject()
	svc, _, generator := newSurveyFixture(t, project, customSurveyJSON(12))

	survey, err := svc.Generate(context.Background(), project.ID, generation.SurveyParams{
		TargetAudience: "Jóvenes",
		Objective:      "Medir apoyo",
	})
	require.NoError(t, err)
	assert.Len(t, survey.Questions, 12)
	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], "Jóvenes")
}

func TestGenerate_RejectsTooFewRequestedQuestions(t *testing.T) {
	project := testProject()
	svc, _, _ := newSurveyFixture(t, project, customSurveyJSON(4))

	_, err := svc.Generate(context.Background(), project.ID, generation.SurveyParams{QuestionCount: 4})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSurveyRegenerate_Validation(t *testing.T) {
	project := testProject()
	svc, _, _ := newSurveyFixture(t, project, customSurveyJSON(6))

	_, err := svc.Regenerate(context.Background(), project.ID, customSurveyJSON(6), "", generation.SurveyParams{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Regenerate(context.Background(), project.ID, nil, "menos preguntas", generation.SurveyParams{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSave_AssignsFreshIdentity(t *testing.T) {
	project := testProject()
	projects := newFakeProjectRepo(project)
	surveys := newFakeSurveyRepo()
	svc := NewSurveyService(projects, surveys, nil, nil)

	closed := time.Now()
	input := &entities.Survey{
		ID:             "caller-supplied",
		Title:          "Consulta",
		ResponsesCount: 99,
		ClosedAt:       &closed,
		Questions: []entities.SurveyQuestion{
			{QuestionText: "¿Está de acuerdo?", Type: entities.QuestionTypeSingleChoice, Options: []string{"Sí", "No"}},
		},
	}

	saved, err := svc.Save(context.Background(), project.ID, input)
	require.NoError(t, err)

	// Server-owned fields are reset regardless of the payload.
	assert.NotEqual(t, "caller-supplied", saved.ID)
	assert.Equal(t, project.ID, saved.ProjectID)
	assert.Equal(t, 0, saved.ResponsesCount)
	assert.Nil(t, saved.ClosedAt)
	assert.Equal(t, entities.SurveyTypeCustom, saved.Type)
	require.Len(t, surveys.created, 1)
}

func TestSave_EachSaveCreatesNewRecord(t *testing.T) {
	project := testProject()
	surveys := newFakeSurveyRepo()
	svc := NewSurveyService(newFakeProjectRepo(project), surveys, nil, nil)

	question := entities.SurveyQuestion{QuestionText: "¿Sí?", Type: entities.QuestionTypeOpenEnded}

	first, err := svc.Save(context.Background(), project.ID, &entities.Survey{Questions: []entities.SurveyQuestion{question}})
	require.NoError(t, err)
	second, err := svc.Save(context.Background(), project.ID, &entities.Survey{Questions: []entities.SurveyQuestion{question}})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, surveys.created, 2)
}

func TestSave_Validation(t *testing.T) {
	project := testProject()
	svc := NewSurveyService(newFakeProjectRepo(project), newFakeSurveyRepo(), nil, nil)

	_, err := svc.Save(context.Background(), project.ID, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Save(context.Background(), project.ID, &entities.Survey{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestGetByID_ReturnsSurveyWithAnswers(t *testing.T) {
	project := testProject()
	surveys := newFakeSurveyRepo()
	surveys.surveys["survey-1"] = &entities.Survey{ID: "survey-1", ProjectID: project.ID}
	surveys.answers["survey-1"] = []*entities.SurveyAnswer{
		{ID: "answer-1", SurveyID: "survey-1", Answers: json.RawMessage(`{"q1": "Sí"}`)},
	}

	svc := NewSurveyService(newFakeProjectRepo(project), surveys, nil, nil)

	survey, answers, err := svc.GetByID(context.Background(), "survey-1")
	require.NoError(t, err)
	assert.Equal(t, "survey-1", survey.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, "answer-1", answers[0].ID)
}
