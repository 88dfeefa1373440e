package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// CreateProjectInput carries the fields and primary PDF of a new project.
type CreateProjectInput struct {
	Name           string
	Slug           string
	Title          string
	Description    string
	AuthorFullname string
	PDF            []byte
	PDFContentType string
}

// ProjectService manages the law project lifecycle: creation with document
// upload and knowledge base provisioning, listing, publishing and file
// inspection.
type ProjectService struct {
	projects     repositories.ProjectRepository
	kbs          repositories.KnowledgeBaseRepository
	blobs        providers.BlobStore
	index        providers.KnowledgeIndexProvider
	spacesBucket string
	spacesRegion string
}

// NewProjectService creates a new project service.
func NewProjectService(
	projects repositories.ProjectRepository,
	kbs repositories.KnowledgeBaseRepository,
	blobs providers.BlobStore,
	index providers.KnowledgeIndexProvider,
	spacesBucket, spacesRegion string,
) *ProjectService {
	return &ProjectService{
		projects:     projects,
		kbs:          kbs,
		blobs:        blobs,
		index:        index,
		spacesBucket: spacesBucket,
		spacesRegion: spacesRegion,
	}
}

// Create initializes a project: stores the primary PDF under the project's
// knowledge-base folder, creates the project record and provisions a remote
// knowledge base over that folder.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*entities.Project, *entities.KnowledgeBase, error) {
	if input.Name == "" || input.Slug == "" || input.AuthorFullname == "" {
		return nil, nil, apperrors.NewValidationError("name, slug and authorFullname are required")
	}
	if len(input.PDF) == 0 {
		return nil, nil, apperrors.NewValidationError("project PDF is required")
	}

	contentType := input.PDFContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	project := &entities.Project{
		ID:             uuid.New().String(),
		Code:           code,
		Name:           input.Name,
		Slug:           input.Slug,
		Title:          input.Title,
		Description:    input.Description,
		AuthorFullname: input.AuthorFullname,
		Filename:       code + "-project.pdf",
		Status:         entities.ProjectStatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := s.blobs.Put(ctx, project.PrimaryDocumentKey(), input.PDF, contentType, true); err != nil {
		return nil, nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, nil, err
	}

	info, err := s.index.Create(ctx, code+"-kb", providers.KnowledgeBaseDatasource{
		BucketName: s.spacesBucket,
		ItemPath:   entities.KnowledgeBaseFolder(code),
		Region:     s.spacesRegion,
	})
	if err != nil {
		return nil, nil, err
	}

	status := entities.IndexStatusUnknown
	if info.LastIndexingJob != nil {
		status = info.LastIndexingJob.Status
	}

	kbNow := time.Now()
	kb := &entities.KnowledgeBase{
		ID:                uuid.New().String(),
		ProjectID:         project.ID,
		UUID:              info.UUID,
		Name:              info.Name,
		Status:            status,
		LastAPIResponse:   info.Raw,
		LastAPIResponseAt: &kbNow,
		CreatedAt:         kbNow,
		UpdatedAt:         kbNow,
	}
	if err := s.kbs.Create(ctx, kb); err != nil {
		return nil, nil, err
	}

	return project, kb, nil
}

// List returns projects matching the filter, newest first.
func (s *ProjectService) List(ctx context.Context, filter repositories.ProjectFilter) ([]*entities.Project, error) {
	return s.projects.List(ctx, filter)
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(ctx context.Context, projectID string) (*entities.Project, error) {
	return s.projects.GetByID(ctx, projectID)
}

// Categories returns the fixed category list.
func (s *ProjectService) Categories() []string {
	return entities.Categories()
}

// Publish marks a ready, fully-populated project as published. The publish
// gate requires a ready status and non-empty title, description, summary,
// category and content.
func (s *ProjectService) Publish(ctx context.Context, projectID string) (*entities.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if ok, missing := project.CanPublish(); !ok {
		return nil, apperrors.NewValidationError("project cannot be published: missing or invalid " + missing)
	}

	now := time.Now()
	project.Status = entities.ProjectStatusPublished
	project.PublishedAt = &now

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Unpublish reverts a published project to ready and clears its publication
// timestamp.
func (s *ProjectService) Unpublish(ctx context.Context, projectID string) (*entities.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	project.Status = entities.ProjectStatusReady
	project.PublishedAt = nil

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListKnowledgeBaseFiles lists the blobs stored under the project's
// knowledge-base folder.
func (s *ProjectService) ListKnowledgeBaseFiles(ctx context.Context, projectID string) ([]providers.BlobObject, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.blobs.List(ctx, entities.KnowledgeBaseFolder(project.Code)+"/")
}

// generateUniqueCode derives a short project code from a UUID and retries
// on the unlikely collision.
func (s *ProjectService) generateUniqueCode(ctx context.Context) (string, error) {
	for {
		code := strings.ReplaceAll(uuid.New().String()[:13], "-", "")

		_, err := s.projects.GetByCode(ctx, code)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
}
