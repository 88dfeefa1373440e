package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func TestRespondWithAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.NewNotFoundError("missing"), http.StatusNotFound},
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"conflict", apperrors.NewConflictError("dup"), http.StatusConflict},
		{"unauthorized", apperrors.NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"external", apperrors.NewExternalError("upstream", nil), http.StatusBadGateway},
		{"timeout", apperrors.NewTimeoutError("slow"), http.StatusGatewayTimeout},
		{"schema violation", apperrors.NewSchemaViolationError("bad payload", nil), http.StatusUnprocessableEntity},
		{"internal", apperrors.NewInternalError("boom", nil), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
