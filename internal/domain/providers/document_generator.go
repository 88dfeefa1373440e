package providers

import (
	"context"
	"encoding/json"
	"time"
)

// UploadedDocument is the remote metadata returned by a document upload.
type UploadedDocument struct {
	Name           string
	DisplayName    string
	URI            string
	MIMEType       string
	State          string
	ExpirationTime *time.Time
	Raw            json.RawMessage
}

// DocumentGenerator defines the interface to the external schema-constrained
// text generator and its document file store.
type DocumentGenerator interface {
	// Upload submits a binary document and returns its remote handle
	// metadata, including the activation state and expiration.
	Upload(ctx context.Context, content []byte, displayName, mimeType string) (*UploadedDocument, error)

	// GetState returns the current activation state of a remote document.
	GetState(ctx context.Context, name string) (string, error)

	// WaitUntilActive polls the document state until it becomes active,
	// failing with a timeout error when the deadline passes first. A poll
	// error is terminal; only "not yet active" is retried.
	WaitUntilActive(ctx context.Context, name string) error

	// GenerateStructured submits a document reference plus prompt text and
	// returns the generator's JSON output constrained to jsonSchema.
	GenerateStructured(ctx context.Context, docURI, docMIMEType, prompt string, jsonSchema map[string]any) (json.RawMessage, error)
}
