package providers

import (
	"context"
	"encoding/json"
)

// IndexingJob is the last indexing run reported for a knowledge base.
type IndexingJob struct {
	Phase            string `json:"phase"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at,omitempty"`
	StartedAt        string `json:"started_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
	FinishedAt       string `json:"finished_at,omitempty"`
	TotalDatasources int    `json:"total_datasources,omitempty"`
	TotalTokens      string `json:"total_tokens,omitempty"`
}

// KnowledgeBaseInfo is the remote state of a knowledge base.
type KnowledgeBaseInfo struct {
	UUID               string          `json:"uuid"`
	Name               string          `json:"name,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
	EmbeddingModelUUID string          `json:"embedding_model_uuid,omitempty"`
	LastIndexingJob    *IndexingJob    `json:"last_indexing_job,omitempty"`
	Raw                json.RawMessage `json:"-"`
}

// KnowledgeBaseDatasource describes the object-storage folder a knowledge
// base indexes.
type KnowledgeBaseDatasource struct {
	BucketName string
	ItemPath   string
	Region     string
}

// KnowledgeIndexProvider defines the interface to the remote indexing
// service: an opaque job system that builds and queries search indexes over
// object-storage folders.
type KnowledgeIndexProvider interface {
	// Create provisions a knowledge base over the given datasource.
	Create(ctx context.Context, name string, ds KnowledgeBaseDatasource) (*KnowledgeBaseInfo, error)

	// Retrieve returns the current remote state of a knowledge base.
	Retrieve(ctx context.Context, uuid string) (*KnowledgeBaseInfo, error)

	// Query runs a hybrid search against an indexed knowledge base and
	// returns the ranked passages as raw JSON.
	Query(ctx context.Context, uuid, query string, numResults int, alpha float64) (json.RawMessage, error)
}
