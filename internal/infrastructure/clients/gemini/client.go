package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/pkg/config"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// Client implements the Gemini document generation provider. Uploaded files
// live in Gemini's file store for roughly 48 hours, so callers must check
// expiration before reuse.
type Client struct {
	client       *genai.Client
	model        string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 60 * time.Second
	}

	return &Client{
		client:       client,
		model:        model,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}, nil
}

// Upload pushes a document into Gemini's file store and returns its handle
// metadata. The returned state is usually PROCESSING; callers wait for
// ACTIVE before generating against the file.
func (c *Client) Upload(ctx context.Context, content []byte, displayName, mimeType string) (*providers.UploadedDocument, error) {
	start := time.Now()
	file, err := c.client.Files.Upload(ctx, bytes.NewReader(content), &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	recordGeminiMetric(ctx, c.model, "files.upload", time.Since(start), err)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to upload document to gemini", err)
	}

	return uploadedDocumentFromFile(file), nil
}

// GetState returns the current activation state of an uploaded document.
func (c *Client) GetState(ctx context.Context, name string) (string, error) {
	start := time.Now()
	file, err := c.client.Files.Get(ctx, name, nil)
	recordGeminiMetric(ctx, c.model, "files.get", time.Since(start), err)
	if err != nil {
		return "", apperrors.NewExternalError("failed to get gemini file state", err)
	}
	return string(file.State), nil
}

// Delete removes an uploaded document from Gemini's file store.
func (c *Client) Delete(ctx context.Context, name string) error {
	start := time.Now()
	_, err := c.client.Files.Delete(ctx, name, nil)
	recordGeminiMetric(ctx, c.model, "files.delete", time.Since(start), err)
	if err != nil {
		return apperrors.NewExternalError("failed to delete gemini file", err)
	}
	return nil
}

// WaitUntilActive polls the document state until it becomes ACTIVE, failing
// with a timeout error when the configured deadline passes first.
func (c *Client) WaitUntilActive(ctx context.Context, name string) error {
	return waitUntilActive(ctx, c.pollInterval, c.pollTimeout, func(ctx context.Context) (string, error) {
		return c.GetState(ctx, name)
	})
}

// waitUntilActive runs the poll loop. Non-ACTIVE states keep polling until
// the deadline; a poll error is terminal.
func waitUntilActive(ctx context.Context, interval, timeout time.Duration, getState func(ctx context.Context) (string, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	state, err := getState(ctx)
	if err != nil {
		return err
	}
	if state == "ACTIVE" {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return apperrors.NewTimeoutError(fmt.Sprintf("document did not become active within %s", timeout))
			}
			return ctx.Err()
		case <-ticker.C:
			state, err := getState(ctx)
			if err != nil {
				return err
			}
			if state == "ACTIVE" {
				return nil
			}
		}
	}
}

// GenerateStructured runs a generation request grounded on an uploaded
// document, constraining the response to the given JSON schema. The returned
// payload is the raw model output, already valid JSON per the schema
// constraint; semantic validation stays with the caller.
func (c *Client) GenerateStructured(ctx context.Context, docURI, docMIMEType, prompt string, jsonSchema map[string]any) (json.RawMessage, error) {
	parts := []*genai.Part{
		genai.NewPartFromURI(docURI, docMIMEType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: jsonSchema,
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	recordGeminiMetric(ctx, c.model, "models.generate", time.Since(start), err)
	if err != nil {
		return nil, apperrors.NewExternalError("gemini generation request failed", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, apperrors.NewExternalError("gemini response missing output text", nil)
	}
	if !json.Valid([]byte(text)) {
		return nil, apperrors.NewSchemaViolationError("gemini returned malformed JSON", nil)
	}

	return json.RawMessage(text), nil
}

func uploadedDocumentFromFile(file *genai.File) *providers.UploadedDocument {
	doc := &providers.UploadedDocument{
		Name:        file.Name,
		DisplayName: file.DisplayName,
		URI:         file.URI,
		MIMEType:    file.MIMEType,
		State:       string(file.State),
	}
	if !file.ExpirationTime.IsZero() {
		exp := file.ExpirationTime
		doc.ExpirationTime = &exp
	}
	if raw, err := json.Marshal(file); err == nil {
		doc.Raw = raw
	}
	return doc
}
