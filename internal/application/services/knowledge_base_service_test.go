package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtuali-gob/backend/internal/domain/entities"
	"github.com/virtuali-gob/backend/internal/domain/providers"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func testKnowledgeBase() *entities.KnowledgeBase {
	return &entities.KnowledgeBase{
		ID:        "kb-1",
		ProjectID: "project-1",
		UUID:      "remote-uuid",
		Name:      "abc123def456-kb",
		Status:    entities.IndexStatusInProgress,
	}
}

func TestRefreshStatus_Readiness(t *testing.T) {
	tests := []struct {
		name          string
		job           *providers.IndexingJob
		wantReady     bool
		wantPersisted string
	}{
		{
			name:          "succeeded and completed",
			job:           &providers.IndexingJob{Phase: entities.IndexPhaseSucceeded, Status: entities.IndexStatusCompleted},
			wantReady:     true,
			wantPersisted: entities.IndexStatusCompleted,
		},
		{
			name:          "succeeded with no changes normalizes to completed",
			job:           &providers.IndexingJob{Phase: entities.IndexPhaseSucceeded, Status: entities.IndexStatusNoChanges},
			wantReady:     true,
			wantPersisted: entities.IndexStatusCompleted,
		},
		{
			name:          "still running",
			job:           &providers.IndexingJob{Phase: entities.IndexPhaseRunning, Status: entities.IndexStatusInProgress},
			wantReady:     false,
			wantPersisted: entities.IndexStatusInProgress,
		},
		{
			name:          "failed",
			job:           &providers.IndexingJob{Phase: entities.IndexPhaseFailed, Status: entities.IndexStatusFailed},
			wantReady:     false,
			wantPersisted: entities.IndexStatusFailed,
		},
		{
			name:          "completed status without succeeded phase is not ready",
			job:           &providers.IndexingJob{Phase: entities.IndexPhaseRunning, Status: entities.IndexStatusCompleted},
			wantReady:     false,
			wantPersisted: entities.IndexStatusCompleted,
		},
		{
			name:          "missing indexing job",
			job:           nil,
			wantReady:     false,
			wantPersisted: entities.IndexStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := testKnowledgeBase()
			repo := newFakeKnowledgeBaseRepo(kb)
			index := &fakeIndexProvider{
				retrieveInfo: &providers.KnowledgeBaseInfo{
					UUID:            kb.UUID,
					Name:            kb.Name,
					LastIndexingJob: tt.job,
					Raw:             json.RawMessage(`{"knowledge_base":{}}`),
				},
			}

			svc := NewKnowledgeBaseService(repo, index)
			status, err := svc.RefreshStatus(context.Background(), kb.ProjectID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantReady, status.Ready)

			stored, err := repo.GetByProjectID(context.Background(), kb.ProjectID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPersisted, stored.Status)
			assert.NotNil(t, stored.LastAPIResponseAt)
			assert.JSONEq(t, `{"knowledge_base":{}}`, string(stored.LastAPIResponse))
		})
	}
}

func TestStatus_DoesNotPersist(t *testing.T) {
	kb := testKnowledgeBase()
	repo := newFakeKnowledgeBaseRepo(kb)
	index := &fakeIndexProvider{
		retrieveInfo: &providers.KnowledgeBaseInfo{
			UUID: kb.UUID,
			LastIndexingJob: &providers.IndexingJob{
				Phase:  entities.IndexPhaseSucceeded,
				Status: entities.IndexStatusCompleted,
			},
		},
	}

	svc := NewKnowledgeBaseService(repo, index)
	info, err := svc.Status(context.Background(), kb.ProjectID)
	require.NoError(t, err)

	assert.Equal(t, kb.UUID, info.UUID)
	assert.Empty(t, repo.updates)
}

func TestRetrieve_AppliesDefaults(t *testing.T) {
	kb := testKnowledgeBase()
	index := &fakeIndexProvider{queryResult: json.RawMessage(`{"results":[]}`)}
	svc := NewKnowledgeBaseService(newFakeKnowledgeBaseRepo(kb), index)

	_, err := svc.Retrieve(context.Background(), kb.ProjectID, "impacto fiscal", 0, 0)
	require.NoError(t, err)

	require.Len(t, index.queryNum, 1)
	assert.Equal(t, 5, index.queryNum[0])
	assert.Equal(t, 0.5, index.queryAlpha[0])
	assert.Equal(t, "impacto fiscal", index.queryQueries[0])
}

func TestRetrieve_RequiresQuery(t *testing.T) {
	svc := NewKnowledgeBaseService(newFakeKnowledgeBaseRepo(testKnowledgeBase()), &fakeIndexProvider{})

	_, err := svc.Retrieve(context.Background(), "project-1", "", 0, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestRefreshStatus_UnknownProject(t *testing.T) {
	svc := NewKnowledgeBaseService(newFakeKnowledgeBaseRepo(), &fakeIndexProvider{})

	_, err := svc.RefreshStatus(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
