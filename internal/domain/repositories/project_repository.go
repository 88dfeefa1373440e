package repositories

import (
	"context"

	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	// Category filters by exact category name. Empty means all categories.
	Category string
	// Draft selects unpublished projects when true, published when false.
	// Nil means no publication filter.
	Draft *bool
}

// ProjectRepository defines the interface for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id string) (*entities.Project, error)
	GetByCode(ctx context.Context, code string) (*entities.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
}
