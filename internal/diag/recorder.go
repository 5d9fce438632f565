package diag

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salespro-app/salespro/internal/logging"
)

// Recorder is a logging.Logger that records every message into a Ring and
// delegates to an inner logger. It is the seam through which the health
// agent observes the rest of the process.
type Recorder struct {
	ring  *Ring
	inner logging.Logger
	attrs []any
}

func NewRecorder(ring *Ring, inner logging.Logger) *Recorder {
	return &Recorder{ring: ring, inner: inner}
}

func (r *Recorder) record(level Level, msg string, args ...any) {
	e := Event{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		Time:    time.Now(),
	}
	kv := append(append([]any{}, r.attrs...), args...)
	if len(kv) >= 2 {
		e.Data = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				continue
			}
			e.Data[k] = kv[i+1]
		}
	}
	r.ring.Add(e)
}

func (r *Recorder) Debug(ctx context.Context, msg string, args ...any) {
	r.record(LevelDebug, msg, args...)
	r.inner.Debug(ctx, msg, args...)
}

func (r *Recorder) Info(ctx context.Context, msg string, args ...any) {
	r.record(LevelInfo, msg, args...)
	r.inner.Info(ctx, msg, args...)
}

func (r *Recorder) Warn(ctx context.Context, msg string, args ...any) {
	r.record(LevelWarn, msg, args...)
	r.inner.Warn(ctx, msg, args...)
}

func (r *Recorder) Error(ctx context.Context, msg string, args ...any) {
	r.record(LevelError, msg, args...)
	r.inner.Error(ctx, msg, args...)
}

func (r *Recorder) With(args ...any) logging.Logger {
	return &Recorder{
		ring:  r.ring,
		inner: r.inner.With(args...),
		attrs: append(append([]any{}, r.attrs...), args...),
	}
}
