package gradient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/pkg/config"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// Client implements the DigitalOcean Gradient knowledge base provider.
// Knowledge bases index an object-storage folder; indexing runs as remote
// jobs whose phase and status are exposed verbatim through Retrieve.
type Client struct {
	accessToken        string
	baseURL            string
	retrieveEndpoint   string
	databaseID         string
	projectID          string
	embeddingModelUUID string
	httpClient         *http.Client
}

// NewClient creates a new Gradient client.
func NewClient(cfg *config.GradientConfig) (*Client, error) {
	if cfg == nil || cfg.AccessToken == "" {
		return nil, errors.New("gradient access token is required")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.digitalocean.com"
	}
	retrieveEndpoint := cfg.RetrieveEndpoint
	if retrieveEndpoint != "" && !strings.HasSuffix(retrieveEndpoint, "/") {
		retrieveEndpoint += "/"
	}

	return &Client{
		accessToken:        cfg.AccessToken,
		baseURL:            baseURL,
		retrieveEndpoint:   retrieveEndpoint,
		databaseID:         cfg.DatabaseID,
		projectID:          cfg.ProjectID,
		embeddingModelUUID: cfg.EmbeddingModelUUID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type knowledgeBaseEnvelope struct {
	KnowledgeBase struct {
		UUID               string                 `json:"uuid"`
		Name               string                 `json:"name"`
		CreatedAt          string                 `json:"created_at"`
		EmbeddingModelUUID string                 `json:"embedding_model_uuid"`
		LastIndexingJob    *providers.IndexingJob `json:"last_indexing_job"`
	} `json:"knowledge_base"`
}

// Create provisions a knowledge base over a Spaces folder datasource.
func (c *Client) Create(ctx context.Context, name string, ds providers.KnowledgeBaseDatasource) (*providers.KnowledgeBaseInfo, error) {
	payload := map[string]any{
		"name":                 name,
		"project_id":           c.projectID,
		"database_id":          c.databaseID,
		"embedding_model_uuid": c.embeddingModelUUID,
		"datasources": []map[string]any{
			{
				"spaces_data_source": map[string]any{
					"bucket_name": ds.BucketName,
					"item_path":   ds.ItemPath,
					"region":      ds.Region,
				},
			},
		},
	}

	raw, err := c.do(ctx, http.MethodPost, c.baseURL+"/v2/gen-ai/knowledge_bases", payload, "knowledge_bases.create")
	if err != nil {
		return nil, err
	}
	return decodeKnowledgeBase(raw)
}

// Retrieve returns the current remote state of a knowledge base, including
// its last indexing job.
func (c *Client) Retrieve(ctx context.Context, uuid string) (*providers.KnowledgeBaseInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, c.baseURL+"/v2/gen-ai/knowledge_bases/"+uuid, nil, "knowledge_bases.get")
	if err != nil {
		return nil, err
	}
	return decodeKnowledgeBase(raw)
}

// Query runs a hybrid search against an indexed knowledge base. alpha
// balances semantic against keyword relevance.
func (c *Client) Query(ctx context.Context, uuid, query string, numResults int, alpha float64) (json.RawMessage, error) {
	if c.retrieveEndpoint == "" {
		return nil, errors.New("gradient retrieve endpoint is not configured")
	}
	if numResults <= 0 {
		numResults = 5
	}

	payload := map[string]any{
		"query":       query,
		"num_results": numResults,
		"alpha":       alpha,
	}
	return c.do(ctx, http.MethodPost, c.retrieveEndpoint+"indexes/"+uuid+"/retrieve", payload, "knowledge_bases.query")
}

func (c *Client) do(ctx context.Context, method, url string, payload any, operation string) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGradientMetric(ctx, operation, 0, time.Since(start), err)
		return nil, apperrors.NewExternalError("gradient request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		recordGradientMetric(ctx, operation, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewExternalError("failed to read gradient response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 512))
		recordGradientMetric(ctx, operation, resp.StatusCode, time.Since(start), statusErr)
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewNotFoundError("knowledge base not found upstream")
		}
		return nil, apperrors.NewExternalError("gradient request failed", statusErr)
	}

	recordGradientMetric(ctx, operation, resp.StatusCode, time.Since(start), nil)
	return raw, nil
}

func decodeKnowledgeBase(raw json.RawMessage) (*providers.KnowledgeBaseInfo, error) {
	var envelope knowledgeBaseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.NewExternalError("failed to decode gradient response", err)
	}
	if envelope.KnowledgeBase.UUID == "" {
		return nil, apperrors.NewExternalError("gradient response missing knowledge base uuid", nil)
	}

	return &providers.KnowledgeBaseInfo{
		UUID:               envelope.KnowledgeBase.UUID,
		Name:               envelope.KnowledgeBase.Name,
		CreatedAt:          envelope.KnowledgeBase.CreatedAt,
		EmbeddingModelUUID: envelope.KnowledgeBase.EmbeddingModelUUID,
		LastIndexingJob:    envelope.KnowledgeBase.LastIndexingJob,
		Raw:                raw,
	}, nil
}

func truncate(raw []byte, max int) string {
	if len(raw) > max {
		return string(raw[:max])
	}
	return string(raw)
}
