package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	"github.com/virtuali-gob/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

var projectColumns = []any{
	"id", "code", "name", "slug", "title", "description", "summary",
	"category", "content", "proposed_questions", "author_fullname",
	"filename", "status", "published_at", "created_at", "updated_at",
}

// ProjectAdapter implements ProjectRepository
type ProjectAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProjectAdapter creates a new project adapter
func NewProjectAdapter(client *postgres.Client) repositories.ProjectRepository {
	return &ProjectAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new project
func (a *ProjectAdapter) Create(ctx context.Context, project *entities.Project) error {
	record, err := projectRecord(project)
	if err != nil {
		return err
	}
	record["id"] = project.ID
	record["code"] = project.Code
	record["created_at"] = project.CreatedAt

	query, args, err := a.db.Insert("projects").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build project insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("project with code %s already exists", project.Code))
		}
		return apperrors.NewInternalError("failed to create project", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (a *ProjectAdapter) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	return a.getByField(ctx, "id", id)
}

// GetByCode retrieves a project by its short code
func (a *ProjectAdapter) GetByCode(ctx context.Context, code string) (*entities.Project, error) {
	return a.getByField(ctx, "code", code)
}

// List retrieves projects matching the filter, newest first
func (a *ProjectAdapter) List(ctx context.Context, filter repositories.ProjectFilter) ([]*entities.Project, error) {
	ds := a.db.Select(projectColumns...).From("projects")

	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}
	if filter.Draft != nil {
		if *filter.Draft {
			ds = ds.Where(goqu.C("status").Neq(entities.ProjectStatusPublished))
		} else {
			ds = ds.Where(goqu.C("status").Eq(entities.ProjectStatusPublished))
		}
	}

	query, args, err := ds.Order(goqu.C("created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build project list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list projects", err)
	}
	defer rows.Close()

	projects := []*entities.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, nil
}

// Update persists the project's mutable fields
func (a *ProjectAdapter) Update(ctx context.Context, project *entities.Project) error {
	project.UpdatedAt = time.Now()

	record, err := projectRecord(project)
	if err != nil {
		return err
	}

	query, args, err := a.db.Update("projects").
		Set(record).
		Where(goqu.Ex{"id": project.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build project update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update project", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("project with id %s not found", project.ID))
	}

	return nil
}

func (a *ProjectAdapter) getByField(ctx context.Context, field, value string) (*entities.Project, error) {
	query, args, err := a.db.Select(projectColumns...).
		From("projects").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build project query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("project with %s %s not found", field, value))
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

func projectRecord(project *entities.Project) (goqu.Record, error) {
	contentJSON, err := json.Marshal(project.Content)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode project content", err)
	}

	return goqu.Record{
		"name":               project.Name,
		"slug":               project.Slug,
		"title":              sql.NullString{String: project.Title, Valid: project.Title != ""},
		"description":        sql.NullString{String: project.Description, Valid: project.Description != ""},
		"summary":            sql.NullString{String: project.Summary, Valid: project.Summary != ""},
		"category":           sql.NullString{String: project.Category, Valid: project.Category != ""},
		"content":            string(contentJSON),
		"proposed_questions": pq.Array(project.ProposedQuestions),
		"author_fullname":    sql.NullString{String: project.AuthorFullname, Valid: project.AuthorFullname != ""},
		"filename":           sql.NullString{String: project.Filename, Valid: project.Filename != ""},
		"status":             project.Status,
		"published_at":       project.PublishedAt,
		"updated_at":         project.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*entities.Project, error) {
	project := &entities.Project{}
	var title, description, summary, category, authorFullname, filename sql.NullString
	var contentJSON []byte
	var publishedAt sql.NullTime

	err := row.Scan(
		&project.ID,
		&project.Code,
		&project.Name,
		&project.Slug,
		&title,
		&description,
		&summary,
		&category,
		&contentJSON,
		pq.Array(&project.ProposedQuestions),
		&authorFullname,
		&filename,
		&project.Status,
		&publishedAt,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan project", err)
	}

	project.Title = title.String
	project.Description = description.String
	project.Summary = summary.String
	project.Category = category.String
	project.AuthorFullname = authorFullname.String
	project.Filename = filename.String
	if publishedAt.Valid {
		project.PublishedAt = &publishedAt.Time
	}
	if len(contentJSON) > 0 {
		if err := json.Unmarshal(contentJSON, &project.Content); err != nil {
			return nil, apperrors.NewInternalError("failed to decode project content", err)
		}
	}

	return project, nil
}
