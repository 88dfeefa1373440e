package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// DocumentHandleService maintains the per-project cache of remote document
// handles. Handles are created lazily on first generation need and replaced
// when their remote reference expires.
type DocumentHandleService struct {
	handles   repositories.DocumentHandleRepository
	projects  repositories.ProjectRepository
	blobs     providers.BlobStore
	generator providers.DocumentGenerator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDocumentHandleService creates a new document handle service.
func NewDocumentHandleService(
	handles repositories.DocumentHandleRepository,
	projects repositories.ProjectRepository,
	blobs providers.BlobStore,
	generator providers.DocumentGenerator,
) *DocumentHandleService {
	return &DocumentHandleService{
		handles:   handles,
		projects:  projects,
		blobs:     blobs,
		generator: generator,
		locks:     map[string]*sync.Mutex{},
	}
}

// GetOrCreate returns the project's live document handle, creating one when
// none exists or the existing one has expired. The get-or-create path is
// serialized per project so concurrent misses produce a single upload.
func (s *DocumentHandleService) GetOrCreate(ctx context.Context, projectID string) (*entities.DocumentHandle, error) {
	lock := s.lockFor(projectID)
	lock.Lock()
	defer lock.Unlock()

	handle, err := s.handles.GetByProjectID(ctx, projectID)
	if err == nil {
		if !handle.IsExpired(time.Now()) {
			return handle, nil
		}
		if err := s.handles.Delete(ctx, handle.ID); err != nil {
			return nil, err
		}
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	return s.create(ctx, projectID)
}

func (s *DocumentHandleService) create(ctx context.Context, projectID string) (*entities.DocumentHandle, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	key := project.PrimaryDocumentKey()
	content, err := s.blobs.Get(ctx, key)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no primary document for project %s", projectID))
		}
		return nil, err
	}

	doc, err := s.generator.Upload(ctx, content, project.Code+"-project.pdf", "application/pdf")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	handle := &entities.DocumentHandle{
		ID:                uuid.New().String(),
		ProjectID:         projectID,
		Name:              doc.Name,
		DisplayName:       doc.DisplayName,
		URI:               doc.URI,
		MIMEType:          doc.MIMEType,
		State:             doc.State,
		ExpirationTime:    doc.ExpirationTime,
		LastAPIResponse:   doc.Raw,
		LastAPIResponseAt: &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.handles.Create(ctx, handle); err != nil {
		return nil, err
	}

	return handle, nil
}

func (s *DocumentHandleService) lockFor(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}
