// Package retry wraps operations with bounded, fixed-delay retry driven by
// the error taxonomy's retry eligibility.
package retry

import (
	"context"
	"time"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/telemetry"
)

// Config defines retry behavior. MaxAttempts counts additional attempts
// after the first; Delay is a fixed wait between attempts, with no backoff
// growth. Both are overridable per invocation.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Sink        telemetry.Sink // nil disables retry telemetry
}

// DefaultConfig provides the standard policy: 4 total attempts, 2s apart.
var DefaultConfig = Config{
	MaxAttempts: 3,
	Delay:       2 * time.Second,
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the
// attempt budget is exhausted. The terminal domain error is propagated
// unchanged; exhausted-but-retryable failures are not masked as a different
// kind. The attempt counter is local to this call, so concurrent and
// successive requests never share retry state.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T

	sink := cfg.Sink
	if sink == nil {
		sink = telemetry.NopSink{}
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		derr := classify.Error(err, classify.Hint{})
		if !derr.Retryable || attempt >= cfg.MaxAttempts {
			return zero, derr
		}

		telemetry.RetryAttempts.Inc()
		sink.Record(ctx, telemetry.Info("retry", "retrying after failure", map[string]any{
			"attempt":      attempt + 1,
			"max_attempts": cfg.MaxAttempts,
			"kind":         string(derr.Kind),
			"request_id":   derr.RequestID,
		}))

		select {
		case <-ctx.Done():
			return zero, classify.Error(ctx.Err(), classify.Hint{})
		case <-time.After(cfg.Delay):
		}
	}
}
