package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StagesCompleted tracks completed pipeline stages.
	StagesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rehabit_stages_completed_total",
			Help: "Total number of completed pipeline stages",
		},
		[]string{"stage"},
	)

	// GenerationErrors tracks classified failures by kind and stage.
	GenerationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rehabit_generation_errors_total",
			Help: "Total number of classified generation errors",
		},
		[]string{"stage", "kind"},
	)

	// StageLatency tracks per-stage wall time.
	StageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rehabit_stage_latency_seconds",
			Help:    "Pipeline stage latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"stage"},
	)

	// GenerationsInFlight tracks concurrently running pipelines.
	GenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rehabit_generations_in_flight",
			Help: "Number of pipeline runs currently executing",
		},
	)

	// RetryAttempts tracks additional attempts made by the retry controller.
	RetryAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rehabit_retry_attempts_total",
			Help: "Total number of retry attempts after a retryable failure",
		},
	)
)
