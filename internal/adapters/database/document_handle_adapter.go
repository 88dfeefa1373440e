package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// DocumentHandleAdapter implements DocumentHandleRepository
type DocumentHandleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDocumentHandleAdapter creates a new document handle adapter
func NewDocumentHandleAdapter(client *postgres.Client) repositories.DocumentHandleRepository {
	return &DocumentHandleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new document handle
func (a *DocumentHandleAdapter) Create(ctx context.Context, handle *entities.DocumentHandle) error {
	record := goqu.Record{
		"id":                   handle.ID,
		"project_id":           handle.ProjectID,
		"name":                 handle.Name,
		"display_name":         sql.NullString{String: handle.DisplayName, Valid: handle.DisplayName != ""},
		"uri":                  handle.URI,
		"mime_type":            handle.MIMEType,
		"state":                handle.State,
		"expiration_time":      handle.ExpirationTime,
		"last_api_response":    sql.NullString{String: string(handle.LastAPIResponse), Valid: len(handle.LastAPIResponse) > 0},
		"last_api_response_at": handle.LastAPIResponseAt,
		"created_at":           handle.CreatedAt,
		"updated_at":           handle.UpdatedAt,
	}

	query, args, err := a.db.Insert("document_handles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build document handle insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create document handle", err)
	}

	return nil
}

// GetByProjectID retrieves the project's document handle
func (a *DocumentHandleAdapter) GetByProjectID(ctx context.Context, projectID string) (*entities.DocumentHandle, error) {
	query, args, err := a.db.Select(
		"id", "project_id", "name", "display_name", "uri", "mime_type",
		"state", "expiration_time", "last_api_response",
		"last_api_response_at", "created_at", "updated_at",
	).From("document_handles").
		Where(goqu.Ex{"project_id": projectID}).
		Order(goqu.C("created_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build document handle query", err)
	}

	handle := &entities.DocumentHandle{}
	var displayName, lastAPIResponse sql.NullString
	var expirationTime, lastAPIResponseAt sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&handle.ID,
		&handle.ProjectID,
		&handle.Name,
		&displayName,
		&handle.URI,
		&handle.MIMEType,
		&handle.State,
		&expirationTime,
		&lastAPIResponse,
		&lastAPIResponseAt,
		&handle.CreatedAt,
		&handle.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document handle for project %s not found", projectID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get document handle", err)
	}

	handle.DisplayName = displayName.String
	if lastAPIResponse.Valid {
		handle.LastAPIResponse = []byte(lastAPIResponse.String)
	}
	if expirationTime.Valid {
		handle.ExpirationTime = &expirationTime.Time
	}
	if lastAPIResponseAt.Valid {
		handle.LastAPIResponseAt = &lastAPIResponseAt.Time
	}

	return handle, nil
}

// Delete removes a document handle by ID
func (a *DocumentHandleAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("document_handles").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build document handle delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete document handle", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("document handle with id %s not found", id))
	}

	return nil
}
