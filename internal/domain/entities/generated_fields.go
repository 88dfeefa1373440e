package entities

// GeneratedFields is the structured summary of a law project produced by a
// generation call. It is ephemeral: the caller reviews it and persists the
// accepted values onto the Project via the save-fields operation.
type GeneratedFields struct {
	ProjectID         string         `json:"id,omitempty"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Summary           string         `json:"summary"`
	Category          string         `json:"category"`
	Content           ProjectContent `json:"content"`
	ProposedQuestions []string       `json:"proposed_questions"`
}
