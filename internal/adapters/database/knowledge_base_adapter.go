package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// KnowledgeBaseAdapter implements KnowledgeBaseRepository
type KnowledgeBaseAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewKnowledgeBaseAdapter creates a new knowledge base adapter
func NewKnowledgeBaseAdapter(client *postgres.Client) repositories.KnowledgeBaseRepository {
	return &KnowledgeBaseAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new knowledge base record
func (a *KnowledgeBaseAdapter) Create(ctx context.Context, kb *entities.KnowledgeBase) error {
	record := goqu.Record{
		"id":                   kb.ID,
		"project_id":           kb.ProjectID,
		"uuid":                 kb.UUID,
		"name":                 kb.Name,
		"status":               kb.Status,
		"last_api_response":    sql.NullString{String: string(kb.LastAPIResponse), Valid: len(kb.LastAPIResponse) > 0},
		"last_api_response_at": kb.LastAPIResponseAt,
		"created_at":           kb.CreatedAt,
		"updated_at":           kb.UpdatedAt,
	}

	query, args, err := a.db.Insert("knowledge_bases").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build knowledge base insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create knowledge base", err)
	}

	return nil
}

// GetByProjectID retrieves the project's knowledge base record
func (a *KnowledgeBaseAdapter) GetByProjectID(ctx context.Context, projectID string) (*entities.KnowledgeBase, error) {
	query, args, err := a.db.Select(
		"id", "project_id", "uuid", "name", "status",
		"last_api_response", "last_api_response_at", "created_at", "updated_at",
	).From("knowledge_bases").
		Where(goqu.Ex{"project_id": projectID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build knowledge base query", err)
	}

	kb := &entities.KnowledgeBase{}
	var lastAPIResponse sql.NullString
	var lastAPIResponseAt sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&kb.ID,
		&kb.ProjectID,
		&kb.UUID,
		&kb.Name,
		&kb.Status,
		&lastAPIResponse,
		&lastAPIResponseAt,
		&kb.CreatedAt,
		&kb.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("knowledge base for project %s not found", projectID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get knowledge base", err)
	}

	if lastAPIResponse.Valid {
		kb.LastAPIResponse = []byte(lastAPIResponse.String)
	}
	if lastAPIResponseAt.Valid {
		kb.LastAPIResponseAt = &lastAPIResponseAt.Time
	}

	return kb, nil
}

// Update persists the knowledge base's mutable fields
func (a *KnowledgeBaseAdapter) Update(ctx context.Context, kb *entities.KnowledgeBase) error {
	kb.UpdatedAt = time.Now()

	record := goqu.Record{
		"status":               kb.Status,
		"last_api_response":    sql.NullString{String: string(kb.LastAPIResponse), Valid: len(kb.LastAPIResponse) > 0},
		"last_api_response_at": kb.LastAPIResponseAt,
		"updated_at":           kb.UpdatedAt,
	}

	query, args, err := a.db.Update("knowledge_bases").
		Set(record).
		Where(goqu.Ex{"id": kb.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build knowledge base update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update knowledge base", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("knowledge base with id %s not found", kb.ID))
	}

	return nil
}
