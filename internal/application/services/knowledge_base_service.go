package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/internal/domain/repositories"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// Retrieval defaults matching the knowledge-base query endpoint.
const (
	defaultRetrieveResults = 5
	defaultRetrieveAlpha   = 0.5
)

// KnowledgeBaseStatus is the outcome of a status refresh.
type KnowledgeBaseStatus struct {
	Ready         bool                         `json:"ready"`
	KnowledgeBase *entities.KnowledgeBase      `json:"knowledgeBase"`
	Info          *providers.KnowledgeBaseInfo `json:"info,omitempty"`
}

// KnowledgeBaseService tracks the indexing status of project knowledge bases
// and proxies retrieval queries against them.
type KnowledgeBaseService struct {
	kbs   repositories.KnowledgeBaseRepository
	index providers.KnowledgeIndexProvider
}

// NewKnowledgeBaseService creates a new knowledge base service.
func NewKnowledgeBaseService(
	kbs repositories.KnowledgeBaseRepository,
	index providers.KnowledgeIndexProvider,
) *KnowledgeBaseService {
	return &KnowledgeBaseService{kbs: kbs, index: index}
}

// RefreshStatus polls the remote indexing service and persists the latest
// raw response and normalized status on the local record. Readiness requires
// a succeeded phase with a completed (or no-changes) status; every other
// combination reads as not ready.
func (s *KnowledgeBaseService) RefreshStatus(ctx context.Context, projectID string) (*KnowledgeBaseStatus, error) {
	kb, err := s.kbs.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	info, err := s.index.Retrieve(ctx, kb.UUID)
	if err != nil {
		return nil, err
	}

	phase := entities.IndexPhaseUnknown
	status := entities.IndexStatusUnknown
	if info.LastIndexingJob != nil {
		phase = info.LastIndexingJob.Phase
		status = info.LastIndexingJob.Status
	}

	now := time.Now()
	kb.Status = entities.NormalizeIndexStatus(status)
	kb.LastAPIResponse = info.Raw
	kb.LastAPIResponseAt = &now

	if err := s.kbs.Update(ctx, kb); err != nil {
		return nil, err
	}

	return &KnowledgeBaseStatus{
		Ready:         entities.IndexingReady(phase, status),
		KnowledgeBase: kb,
		Info:          info,
	}, nil
}

// Status returns the raw remote state of the project's knowledge base
// without touching the local record.
func (s *KnowledgeBaseService) Status(ctx context.Context, projectID string) (*providers.KnowledgeBaseInfo, error) {
	kb, err := s.kbs.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.index.Retrieve(ctx, kb.UUID)
}

// Retrieve runs a hybrid search query against the project's knowledge base.
func (s *KnowledgeBaseService) Retrieve(ctx context.Context, projectID, query string, numResults int, alpha float64) (json.RawMessage, error) {
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	if numResults <= 0 {
		numResults = defaultRetrieveResults
	}
	if alpha <= 0 {
		alpha = defaultRetrieveAlpha
	}

	kb, err := s.kbs.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.index.Query(ctx, kb.UUID, query, numResults, alpha)
}
