package repositories

import (
	"context"

	"github.com/virtuali-gob/backend/internal/domain/entities"
)

// KnowledgeBaseRepository defines the interface for knowledge base record
// persistence.
type KnowledgeBaseRepository interface {
	Create(ctx context.Context, kb *entities.KnowledgeBase) error
	GetByProjectID(ctx context.Context, projectID string) (*entities.KnowledgeBase, error)
	Update(ctx context.Context, kb *entities.KnowledgeBase) error
}
