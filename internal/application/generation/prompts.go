package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Generation rules shared by every fields prompt. The JSON keys must stay in
// English even though the content is Spanish.
const fieldsRules = `
IMPORTANTE:
- No cambies de lenguaje las keys del JSON, deben ser exactamente las mismas.
- Si no puedes encontrar la información en el proyecto de ley, devuelve una cadena vacía para ese campo.
- Las preguntas que generes en "proposed_questions" deben ser simples y directas, enfocadas en ciudadanos comunes. Son preguntas que luego irán a un chat con capacidades de RAG sobre el proyecto y sobre el funcionamiento del sistema legislativo argentino.`

// FieldsPrompt returns the extraction prompt for generating law project
// fields from the uploaded document.
func FieldsPrompt() string {
	return `Eres un experto en proyectos de ley de Argentina.
Se te proporcionará un proyecto de Ley y deberás completar el schema JSON solicitado a partir del contenido del proyecto de ley.

Intenta que la información esté a un nivel de comprensión general: el público serán principalmente ciudadanos sin conocimientos legales.
` + fieldsRules
}

// RegenerateFieldsPrompt returns the prompt for producing an updated fields
// object from a prior one plus the user's edit request.
func RegenerateFieldsPrompt(previousFields json.RawMessage, userEditRequest string) string {
	return fmt.Sprintf(`Eres un/a experto/a en proyectos de ley de Argentina.

En una interacción anterior, creaste el siguiente objeto JSON basado en el archivo del proyecto de ley:
<previousLawProjectFields>
%s
</previousLawProjectFields>

El usuario ha proporcionado los siguientes comentarios y solicitudes de edición:
<userEditRequest>
%s
</userEditRequest>

Utilizando el archivo del proyecto de ley proporcionado, genera un nuevo objeto JSON actualizado que refleje las ediciones solicitadas por el usuario.
%s`, indentJSON(previousFields), userEditRequest, fieldsRules)
}

// BaseSurveyPrompt returns the fixed prompt of the base deliberation survey:
// ten yes/no/don't-know questions plus survey metadata.
func BaseSurveyPrompt() string {
	return `Eres un/a experto/a en diseño de encuestas de participación ciudadana.
Basándote en el contenido del archivo del proyecto de ley, crea la encuesta base de deliberación pública del proyecto.

La encuesta debe contener exactamente 10 preguntas de opción única, cada una respondible con "Sí", "No" o "No sé".
Las preguntas deben cubrir los puntos centrales del proyecto y ser comprensibles para ciudadanos sin conocimientos legales.
Evita preguntas sesgadas o sugerentes; cada pregunta debe poder responderse con honestidad desde cualquier postura.

Además de las preguntas, genera los metadatos de la encuesta: un título, una breve descripción (about), la audiencia objetivo, un título de bienvenida y un subtítulo de bienvenida.

Proporciona la encuesta en formato JSON cumpliendo con el esquema especificado.`
}

// SurveyPrompt returns the parametrized survey generation prompt embedding
// the caller's parameters.
func SurveyPrompt(params SurveyParams) string {
	return fmt.Sprintf(`Eres un/a experto/a en diseño de encuestas.
Basándote en el siguiente contenido del archivo del proyecto, crea una encuesta que esté alineada con los objetivos del proyecto.
La encuesta debe incluir preguntas que recopilen de forma eficaz comentarios relevantes para las metas del proyecto.

La audiencia objetivo de la encuesta es:
<targetAudience>
%s
</targetAudience>

El objetivo principal del proyecto es:
<objective>
%s
</objective>

Contexto adicional proporcionado por el usuario:
<context>
%s
</context>

El usuario que solicita la encuesta ha proporcionado las siguientes instrucciones:
<userInstruction>
%s
</userInstruction>

La encuesta debe incluir las siguientes preguntas específicas:
<requiredQuestions>
%s
</requiredQuestions>

La encuesta debe contener como máximo %d preguntas.
Usa tu mejor criterio para diseñar preguntas adicionales que complementen las solicitadas y mejoren la efectividad de la encuesta.
Asegúrate de que las preguntas sean claras, imparciales y estén estructuradas para facilitar el análisis de las respuestas.

Proporciona la encuesta en formato JSON cumpliendo con el esquema especificado.`,
		params.TargetAudience,
		params.Objective,
		params.Context,
		params.UserInstructions,
		strings.Join(params.RequiredQuestions, "\n"),
		params.QuestionCount,
	)
}

// RegenerateSurveyPrompt returns the prompt for revising a previously
// generated survey. The instructions are ordered by priority: user edits
// first, then required questions, audience and original objective.
func RegenerateSurveyPrompt(originalSurvey json.RawMessage, userEditRequest string, params SurveyParams) string {
	return fmt.Sprintf(`Eres un/a experto/a en diseño de encuestas. En una interacción anterior, creaste la siguiente encuesta basada en el archivo del proyecto:
<originalSurvey>
%s
</originalSurvey>

El usuario ha proporcionado los siguientes comentarios y solicitudes de edición:
<userEditRequest>
%s
</userEditRequest>

Los parámetros originales de la encuesta fueron: audiencia objetivo "%s", objetivo "%s" y las siguientes preguntas requeridas:
<requiredQuestions>
%s
</requiredQuestions>

Por favor, revisa la encuesta original aplicando los cambios en este orden de prioridad:
1. Aplica las ediciones solicitadas por el usuario.
2. Mantén las preguntas requeridas, salvo que el usuario pida explícitamente quitarlas.
3. Respeta la audiencia objetivo.
4. Conserva el objetivo original del proyecto.

Mantén la cantidad de preguntas de la encuesta original salvo indicación explícita en contrario.

Proporciona la encuesta actualizada en formato JSON cumpliendo con el mismo esquema que antes.`,
		indentJSON(originalSurvey),
		userEditRequest,
		params.TargetAudience,
		params.Objective,
		strings.Join(params.RequiredQuestions, "\n"),
	)
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
