package repositories

import (
	"context"

	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// DocumentHandleRepository defines the interface for document handle
// persistence. A project has at most one handle at any time.
type DocumentHandleRepository interface {
	Create(ctx context.Context, handle *entities.DocumentHandle) error
	GetByProjectID(ctx context.Context, projectID string) (*entities.DocumentHandle, error)
	Delete(ctx context.Context, id string) error
}
