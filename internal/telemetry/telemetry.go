// Package telemetry receives structured error and progress records from the
// pipeline. Delivery is fire-and-forget: sinks must never block or fail
// pipeline execution.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/movi008/rehabit/internal/core/domain"
)

// Level indicates record severity.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Record is one structured telemetry event.
type Record struct {
	Level     Level          `json:"level"`
	Kind      string         `json:"kind,omitempty"`
	Message   string         `json:"message"`
	Source    string         `json:"source,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"requestId,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
}

// Sink consumes telemetry records. Implementations must return quickly and
// swallow their own delivery failures.
type Sink interface {
	Record(ctx context.Context, rec Record)
}

// FromError builds an error record from a classified domain error.
func FromError(err *domain.Error) Record {
	return Record{
		Level:     LevelError,
		Kind:      string(err.Kind),
		Message:   err.Message,
		Source:    err.Source,
		Timestamp: err.Timestamp,
		RequestID: err.RequestID,
		Details:   err.Details,
		Retryable: err.Retryable,
	}
}

// Info builds an informational record.
func Info(source, message string, details map[string]any) Record {
	return Record{
		Level:     LevelInfo,
		Message:   message,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
}

// LogSink writes records to a slog logger.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

// Record implements Sink.
func (s *LogSink) Record(_ context.Context, rec Record) {
	attrs := []any{
		slog.String("source", rec.Source),
	}
	if rec.Kind != "" {
		attrs = append(attrs, slog.String("kind", rec.Kind))
	}
	if rec.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", rec.RequestID))
	}
	if rec.Retryable {
		attrs = append(attrs, slog.Bool("retryable", true))
	}
	if len(rec.Details) > 0 {
		attrs = append(attrs, slog.Any("details", rec.Details))
	}

	if rec.Level == LevelError {
		s.log.Error(rec.Message, attrs...)
		return
	}
	s.log.Info(rec.Message, attrs...)
}

// MultiSink fans a record out to several sinks.
type MultiSink []Sink

// Record implements Sink.
func (m MultiSink) Record(ctx context.Context, rec Record) {
	for _, s := range m {
		s.Record(ctx, rec)
	}
}

// NopSink discards all records.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(context.Context, Record) {}
