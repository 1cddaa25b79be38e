package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redisclient "github.com/movi008/rehabit/internal/infra/redis"
)

// RedisSink ships records to a capped Redis list so an external collector
// can drain them. Delivery happens off the caller's goroutine; failures are
// logged at debug and otherwise dropped.
type RedisSink struct {
	client *redisclient.Client
	key    string
	maxLen int64
	log    *slog.Logger
}

// NewRedisSink creates a RedisSink writing to cfg.Key.
func NewRedisSink(client *redisclient.Client, cfg redisclient.Config, log *slog.Logger) *RedisSink {
	if log == nil {
		log = slog.Default()
	}
	key := cfg.Key
	if key == "" {
		key = "rehabit:telemetry"
	}
	return &RedisSink{client: client, key: key, maxLen: cfg.MaxLen, log: log}
}

// Record implements Sink. It never blocks the caller.
func (s *RedisSink) Record(_ context.Context, rec Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.log.Debug("failed to encode telemetry record", "error", err)
		return
	}

	go func() {
		// Detached from the pipeline's context: a finished or cancelled run
		// still gets its records shipped.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.client.Push(ctx, s.key, payload, s.maxLen); err != nil {
			s.log.Debug("failed to ship telemetry record", "error", err)
		}
	}()
}
