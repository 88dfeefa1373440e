package generation

import (
	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// Base survey fixed answer options.
var baseSurveyOptions = []string{"Sí", "No", "No sé"}

// FieldsSchema returns the JSON schema constraining generated law project
// fields. Field descriptions double as generation guidance, so they stay in
// the language of the source documents.
func FieldsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titulo de proyecto de Ley. Evitar artificios como 'Proyecto de Ley para...'. Evitar que sea todo en mayusculas.",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Descripcion del proyecto de Ley. Este campo soporta texto simple, no formato Markdown. En lo posible que no supere 450 caracteres.",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Resumen del proyecto de Ley. Explica de forma simple y breve la idea principal del proyecto de ley, mencionando al final quien impulsa el proyecto. La idea es que no pase un parrafo y que no se extienda de mas de 768 caracteres. Soporta formato Markdown.",
			},
			"category": map[string]any{
				"type":        "string",
				"enum":        entities.Categories(),
				"description": "Categoria del proyecto de Ley, debe ser una de las opciones del listado predefinido.",
			},
			"content": map[string]any{
				"type":        "object",
				"description": "Un objeto JSON con las siguientes keys: objective, justification, key_changes, impact_on_society. Cada key debe contener una breve explicacion relacionada con el proyecto de ley.",
				"properties": map[string]any{
					"objective":         contentSectionSchema("Explicacion del objetivo del proyecto de ley."),
					"justification":     contentSectionSchema("Explicacion de la justificacion del proyecto de ley."),
					"key_changes":       contentSectionSchema("Explicacion de los cambios principales que introduce el proyecto de ley."),
					"impact_on_society": contentSectionSchema("Explicacion del impacto en la sociedad que tendria la aprobacion del proyecto de ley."),
				},
				"required": []string{"objective", "justification", "key_changes", "impact_on_society"},
			},
			"proposed_questions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    7,
				"description": "Un array de strings, cada string es una pregunta que podria hacerse un ciudadano comun sobre el proyecto de ley. Deben ser preguntas simples y directas, no mas de 7 preguntas. El formato es texto simple.",
			},
		},
		"required": []string{"title", "description", "summary", "category", "content"},
	}
}

func contentSectionSchema(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description + " (Soporta formato Markdown. Preferentemente sin titulos, solo cuerpo de texto, como maximo hasta dos parrafos.)",
	}
}

// BaseSurveySchema returns the JSON schema of the base deliberation survey:
// exactly ten single-choice questions with a fixed Sí/No/No sé answer set,
// plus survey metadata generated in the same call.
func BaseSurveySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Titulo de la encuesta, breve y descriptivo.",
			},
			"about": map[string]any{
				"type":        "string",
				"description": "Breve descripcion del proposito de la encuesta.",
			},
			"targetAudience": map[string]any{
				"type":        "string",
				"description": "Audiencia objetivo de la encuesta.",
			},
			"welcomeTitle": map[string]any{
				"type":        "string",
				"description": "Titulo de bienvenida que se muestra al iniciar la encuesta.",
			},
			"welcomeSubtitle": map[string]any{
				"type":        "string",
				"description": "Subtitulo de bienvenida que acompaña al titulo.",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 10,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionText": map[string]any{
							"type":        "string",
							"description": "El texto de la pregunta a incluir en la encuesta.",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []string{entities.QuestionTypeSingleChoice},
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string", "enum": baseSurveyOptions},
							"minItems": 3,
							"maxItems": 3,
						},
						"required": map[string]any{
							"type":        "boolean",
							"description": "Indica si la pregunta es obligatoria.",
						},
						"openTextEnabled": map[string]any{
							"type":        "boolean",
							"description": "Permite al encuestado ampliar su respuesta con texto libre.",
						},
						"helpText": map[string]any{
							"type":        "string",
							"description": "Texto de ayuda adicional para la pregunta, si es necesario.",
						},
					},
					"required": []string{"questionText", "type", "options", "required", "openTextEnabled"},
				},
			},
		},
		"required": []string{"title", "about", "targetAudience", "welcomeTitle", "welcomeSubtitle", "questions"},
	}
}

// SurveySchema returns the JSON schema of a parametrized survey: between
// five and questionCount questions drawn from the four supported question
// types.
func SurveySchema(questionCount int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": questionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionText": map[string]any{
							"type":        "string",
							"description": "El texto de la pregunta a incluir en la encuesta. Nota: No siempre debe ser en formato de pregunta, puede ser una instruccion o una solicitud de feedback.",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []string{
								entities.QuestionTypeMultipleChoice,
								entities.QuestionTypeOpenEnded,
								entities.QuestionTypeRating,
								entities.QuestionTypeSingleChoice,
							},
							"description": "El tipo de pregunta: opcion multiple, abierta, de calificacion o de opcion unica.",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Las opciones disponibles para preguntas de opcion multiple o unica, si aplica.",
						},
						"required": map[string]any{
							"type":        "boolean",
							"description": "Indica si la pregunta es obligatoria.",
						},
						"helpText": map[string]any{
							"type":        "string",
							"description": "Texto de ayuda adicional para la pregunta, si es necesario.",
						},
						"maxLength": map[string]any{
							"type":        "number",
							"description": "La longitud maxima permitida para respuestas abiertas, si aplica.",
						},
						"scale": map[string]any{
							"type":        "number",
							"description": "La escala de calificacion para preguntas de calificacion, si aplica.",
						},
					},
					"required": []string{"questionText", "type", "required"},
				},
			},
		},
		"required": []string{"questions"},
	}
}
