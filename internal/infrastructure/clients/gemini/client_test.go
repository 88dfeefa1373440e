package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

func TestWaitUntilActive_ImmediatelyActive(t *testing.T) {
	calls := 0
	err := waitUntilActive(context.Background(), time.Minute, time.Minute, func(ctx context.Context) (string, error) {
		calls++
		return "ACTIVE", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "an already-active document needs no ticker wait")
}

func TestWaitUntilActive_BecomesActiveAfterPolling(t *testing.T) {
	calls := 0
	err := waitUntilActive(context.Background(), time.Millisecond, time.Second, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "PROCESSING", nil
		}
		return "ACTIVE", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitUntilActive_TimesOut(t *testing.T) {
	err := waitUntilActive(context.Background(), time.Millisecond, 20*time.Millisecond, func(ctx context.Context) (string, error) {
		return "PROCESSING", nil
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout))
}

func TestWaitUntilActive_PollErrorIsTerminal(t *testing.T) {
	calls := 0
	pollErr := apperrors.NewExternalError("file api unavailable", nil)
	err := waitUntilActive(context.Background(), time.Millisecond, time.Second, func(ctx context.Context) (string, error) {
		calls++
		return "", pollErr
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, 1, calls)
}

func TestWaitUntilActive_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitUntilActive(ctx, time.Millisecond, time.Second, func(ctx context.Context) (string, error) {
		return "PROCESSING", nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
