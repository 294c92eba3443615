package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Recorder sends pipeline metrics to Sentry. Without an initialized
// Sentry client every call is a no-op.
type Recorder struct {
	enabled bool
}

// NewRecorder reports to the current Sentry hub if it has a client.
func NewRecorder() *Recorder {
	return &Recorder{
		enabled: sentry.CurrentHub().Client() != nil,
	}
}

// RecordCompose records one melody + accompaniment run.
func (r *Recorder) RecordCompose(ctx context.Context, duration time.Duration, notes, generations, fitness int, err error) {
	if r == nil || !r.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "compose")
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", err == nil))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("notes", notes)
	span.SetData("generations", generations)
	span.SetData("fitness", fitness)

	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		sentry.CaptureException(err)
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Description = fmt.Sprintf("Compose: %d notes", notes)
}
