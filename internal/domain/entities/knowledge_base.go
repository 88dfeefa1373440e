package entities

import (
	"encoding/json"
	"time"
)

// Indexing job phases reported by the knowledge-base service.
const (
	IndexPhaseUnknown   = "BATCH_JOB_PHASE_UNKNOWN"
	IndexPhasePending   = "BATCH_JOB_PHASE_PENDING"
	IndexPhaseRunning   = "BATCH_JOB_PHASE_RUNNING"
	IndexPhaseSucceeded = "BATCH_JOB_PHASE_SUCCEEDED"
	IndexPhaseFailed    = "BATCH_JOB_PHASE_FAILED"
	IndexPhaseError     = "BATCH_JOB_PHASE_ERROR"
	IndexPhaseCancelled = "BATCH_JOB_PHASE_CANCELLED"
)

// Indexing job statuses reported by the knowledge-base service.
// NO_CHANGES means the job completed without detecting changes and is
// operationally equivalent to COMPLETED.
const (
	IndexStatusUnknown    = "INDEX_JOB_STATUS_UNKNOWN"
	IndexStatusPartial    = "INDEX_JOB_STATUS_PARTIAL"
	IndexStatusInProgress = "INDEX_JOB_STATUS_IN_PROGRESS"
	IndexStatusCompleted  = "INDEX_JOB_STATUS_COMPLETED"
	IndexStatusFailed     = "INDEX_JOB_STATUS_FAILED"
	IndexStatusNoChanges  = "INDEX_JOB_STATUS_NO_CHANGES"
	IndexStatusPending    = "INDEX_JOB_STATUS_PENDING"
	IndexStatusCancelled  = "INDEX_JOB_STATUS_CANCELLED"
)

// KnowledgeBase is the remote search index built over a project's
// supporting documents. Created once at project creation and updated by
// status polling; the raw upstream response is always preserved.
type KnowledgeBase struct {
	ID                string          `json:"id" db:"id"`
	ProjectID         string          `json:"project_id" db:"project_id"`
	UUID              string          `json:"uuid" db:"uuid"`
	Name              string          `json:"name" db:"name"`
	Status            string          `json:"status" db:"status"`
	LastAPIResponse   json.RawMessage `json:"last_api_response,omitempty" db:"last_api_response"`
	LastAPIResponseAt *time.Time      `json:"last_api_response_at,omitempty" db:"last_api_response_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// NormalizedStatus collapses NO_CHANGES into COMPLETED for external
// consumers. The mapping is applied only on read; the stored status keeps
// the raw upstream value.
func (kb *KnowledgeBase) NormalizedStatus() string {
	return NormalizeIndexStatus(kb.Status)
}

// NormalizeIndexStatus maps an upstream indexing status to its external
// representation.
func NormalizeIndexStatus(status string) string {
	if status == IndexStatusNoChanges {
		return IndexStatusCompleted
	}
	return status
}

// IndexingReady reports whether an indexing job phase/status pair means the
// knowledge base is ready to serve queries. Unknown, failed and cancelled
// combinations are indistinguishable from "still running" here; callers
// needing detail inspect the raw response.
func IndexingReady(phase, status string) bool {
	return phase == IndexPhaseSucceeded &&
		(status == IndexStatusCompleted || status == IndexStatusNoChanges)
}
