package entities

import "time"

// Project lifecycle statuses.
const (
	ProjectStatusCreated   = "created"
	ProjectStatusReady     = "ready"
	ProjectStatusPublished = "published"
)

// Categories returns the fixed list of policy domains a project can belong
// to. The list is intentionally short, stable over time and meant for
// navigation; a project carries exactly one category.
func Categories() []string {
	return []string{
		"Asuntos Constitucionales",
		"Economía y Hacienda",
		"Educación y Cultura",
		"Salud Pública",
		"Justicia y Derechos Humanos",
		"Seguridad y Defensa",
		"Trabajo y Seguridad Social",
		"Medio Ambiente y Recursos Naturales",
		"Ciencia, Tecnología e Innovación",
		"Relaciones Exteriores",
		"Infraestructura y Transporte",
		"Agricultura, Ganadería y Pesca",
		"Género y Diversidad",
		"Desarrollo Social y Niñez",
	}
}

// IsValidCategory reports whether category is one of the predefined values.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// ProjectContent is the nested structured content of a law project.
type ProjectContent struct {
	Objective       string `json:"objective"`
	Justification   string `json:"justification"`
	KeyChanges      string `json:"key_changes"`
	ImpactOnSociety string `json:"impact_on_society"`
}

// IsEmpty reports whether no content section has been filled in.
func (c ProjectContent) IsEmpty() bool {
	return c.Objective == "" && c.Justification == "" && c.KeyChanges == "" && c.ImpactOnSociety == ""
}

// Project represents a legislative bill under processing.
type Project struct {
	ID                string         `json:"id" db:"id"`
	Code              string         `json:"code" db:"code"`
	Name              string         `json:"name" db:"name"`
	Slug              string         `json:"slug" db:"slug"`
	Title             string         `json:"title" db:"title"`
	Description       string         `json:"description" db:"description"`
	Summary           string         `json:"summary" db:"summary"`
	Category          string         `json:"category" db:"category"`
	Content           ProjectContent `json:"content" db:"content"`
	ProposedQuestions []string       `json:"proposed_questions" db:"proposed_questions"`
	AuthorFullname    string         `json:"author_fullname" db:"author_fullname"`
	Filename          string         `json:"filename" db:"filename"`
	Status            string         `json:"status" db:"status"`
	PublishedAt       *time.Time     `json:"published_at,omitempty" db:"published_at"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// PrimaryDocumentKey returns the object-storage key of the project's main
// PDF, following the knowledge-base folder convention.
func (p *Project) PrimaryDocumentKey() string {
	return KnowledgeBaseFolder(p.Code) + "/" + p.Code + "-project.pdf"
}

// KnowledgeBaseFolder returns the object-storage folder indexed by the
// project's knowledge base.
func KnowledgeBaseFolder(code string) string {
	return "knowledge_bases/" + code + "-files/knowledge_base"
}

// CanPublish reports whether the project satisfies the publish gate:
// status must be ready and all generated fields must be non-empty. The
// returned string names the first missing field when publishing is blocked.
func (p *Project) CanPublish() (bool, string) {
	if p.Status != ProjectStatusReady {
		return false, "status"
	}
	switch {
	case p.Title == "":
		return false, "title"
	case p.Description == "":
		return false, "description"
	case p.Summary == "":
		return false, "summary"
	case p.Category == "":
		return false, "category"
	case p.Content.IsEmpty():
		return false, "content"
	}
	return true, ""
}
