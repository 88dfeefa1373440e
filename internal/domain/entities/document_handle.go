package entities

import (
	"encoding/json"
	"time"
)

// Activation states of a remote document handle, as reported by the
// generation gateway's file API.
const (
	DocumentStateUnspecified = "STATE_UNSPECIFIED"
	DocumentStateProcessing  = "PROCESSING"
	DocumentStateActive      = "ACTIVE"
	DocumentStateFailed      = "FAILED"
)

// DocumentHandle is a remote, time-limited reference to an uploaded binary
// document usable by the generation gateway. A project owns at most one live
// handle; expired handles are deleted and recreated on demand.
type DocumentHandle struct {
	ID                string          `json:"id" db:"id"`
	ProjectID         string          `json:"project_id" db:"project_id"`
	Name              string          `json:"name" db:"name"`
	DisplayName       string          `json:"display_name" db:"display_name"`
	URI               string          `json:"uri" db:"uri"`
	MIMEType          string          `json:"mime_type" db:"mime_type"`
	State             string          `json:"state" db:"state"`
	ExpirationTime    *time.Time      `json:"expiration_time,omitempty" db:"expiration_time"`
	LastAPIResponse   json.RawMessage `json:"last_api_response,omitempty" db:"last_api_response"`
	LastAPIResponseAt *time.Time      `json:"last_api_response_at,omitempty" db:"last_api_response_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the handle's remote reference has expired at
// the given instant. A handle without an expiration never expires.
func (h *DocumentHandle) IsExpired(now time.Time) bool {
	if h.ExpirationTime == nil {
		return false
	}
	return now.After(*h.ExpirationTime)
}
