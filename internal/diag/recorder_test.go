package diag

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespro-app/salespro/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRecorderCapturesEvents(t *testing.T) {
	ctx := context.Background()
	ring := NewRing(10)
	rec := NewRecorder(ring, discardLogger())

	rec.Info(ctx, "reconciled", "telegram_id", "42")
	rec.Error(ctx, "remote fetch failed", "error", "timeout")

	events := ring.Events()
	require.Len(t, events, 2)

	assert.Equal(t, LevelError, events[0].Level)
	assert.Equal(t, "remote fetch failed", events[0].Message)
	assert.Equal(t, "timeout", events[0].Data["error"])
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Time.IsZero())

	assert.Equal(t, LevelInfo, events[1].Level)
	assert.Equal(t, "42", events[1].Data["telegram_id"])
}

func TestRecorderWithCarriesAttrs(t *testing.T) {
	ctx := context.Background()
	ring := NewRing(10)
	rec := NewRecorder(ring, discardLogger())

	child := rec.With("component", "outbox")
	child.Warn(ctx, "still failing", "attempts", 3)

	events := ring.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "outbox", events[0].Data["component"])
	assert.Equal(t, 3, events[0].Data["attempts"])
}
