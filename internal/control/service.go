// Package control wires configuration, capability adapters, the pipeline,
// retry and telemetry into a runnable service.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
	"github.com/movi008/rehabit/internal/infra/provider"
	redisclient "github.com/movi008/rehabit/internal/infra/redis"
	"github.com/movi008/rehabit/internal/pipeline"
	"github.com/movi008/rehabit/internal/retry"
	"github.com/movi008/rehabit/internal/telemetry"
)

// Config holds the service configuration.
type Config struct {
	Port         int
	Capabilities config.Capabilities
	Retry        config.RetryConfig
	Redis        redisclient.Config
	Log          *slog.Logger
}

// Service is the top-level application object.
type Service struct {
	cfg      Config
	runner   *pipeline.Runner
	retryCfg retry.Config
	sink     telemetry.Sink
	redis    *redisclient.Client
	server   *http.Server
	log      *slog.Logger
}

// NewService creates a Service with all dependencies initialized.
func NewService(cfg Config) (*Service, error) {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	sinks := telemetry.MultiSink{telemetry.NewLogSink(log)}

	// The Redis sink is optional: telemetry must never be a reason the
	// service can't start.
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis telemetry disabled", "error", err)
		} else {
			sinks = append(sinks, telemetry.NewRedisSink(redisClient, cfg.Redis, log))
			log.Info("Redis telemetry enabled", "key", cfg.Redis.Key)
		}
	}

	adapters := provider.NewRegistry(cfg.Capabilities)
	runner := pipeline.NewRunner(adapters, sinks, cfg.Capabilities.Image.ImageCount)

	retryCfg := retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Delay:       cfg.Retry.Delay,
		Sink:        sinks,
	}
	if retryCfg.MaxAttempts == 0 {
		retryCfg.MaxAttempts = retry.DefaultConfig.MaxAttempts
	}
	if retryCfg.Delay == 0 {
		retryCfg.Delay = retry.DefaultConfig.Delay
	}

	s := &Service{
		cfg:      cfg,
		runner:   runner,
		retryCfg: retryCfg,
		sink:     sinks,
		redis:    redisClient,
		log:      log,
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.routes(),
	}
	return s, nil
}

// Generate runs one generation pipeline under the service's retry policy.
// The progress callback may be invoked again from the first stage if a
// retryable failure restarts the run.
func (s *Service) Generate(ctx context.Context, req domain.Request, onProgress pipeline.ProgressFunc) (*domain.Result, error) {
	if req.Prompt == "" {
		return nil, domain.NewError(domain.KindMissingRequiredField, "prompt is required").
			WithDetail("field", "prompt")
	}

	return retry.Do(ctx, s.retryCfg, func(ctx context.Context) (*domain.Result, error) {
		return s.runner.Run(ctx, req, onProgress)
	})
}

// Start begins serving HTTP. Non-blocking; the server runs until Stop.
func (s *Service) Start(ctx context.Context) error {
	go func() {
		s.log.Info("HTTP server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server failed", "error", err)
		}
	}()
	return nil
}

// Stop shuts the service down gracefully.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn("failed to close redis client", "error", err)
		}
	}
	return nil
}
