package control

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/movi008/rehabit/internal/core/classify"
	"github.com/movi008/rehabit/internal/core/config"
	"github.com/movi008/rehabit/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes builds the HTTP surface: generation, health, metrics. The HTTP
// layer is a thin collaborator; orchestration semantics live in the
// pipeline and retry packages.
func (s *Service) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// errorBody is the user-facing shape of a terminal domain error. Details
// are logged, never returned.
type errorBody struct {
	Kind            domain.Kind `json:"kind"`
	Message         string      `json:"message"`
	RequestID       string      `json:"requestId"`
	Retryable       bool        `json:"retryable"`
	SuggestedAction string      `json:"suggestedAction,omitempty"`
}

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, domain.NewError(domain.KindInvalidInputFormat,
			"request body is not valid JSON").WithDetail("error", err.Error()))
		return
	}

	result, err := s.Generate(r.Context(), req, nil)
	if err != nil {
		var derr *domain.Error
		if !errors.As(err, &derr) {
			derr = classify.Error(err, classify.Hint{})
		}
		s.writeError(w, derr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (s *Service) writeError(w http.ResponseWriter, derr *domain.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(derr.Kind))
	_ = json.NewEncoder(w).Encode(map[string]errorBody{"error": {
		Kind:            derr.Kind,
		Message:         derr.UserMessage,
		RequestID:       derr.RequestID,
		Retryable:       derr.Retryable,
		SuggestedAction: derr.SuggestedAction,
	}})
}

// statusForKind maps the taxonomy to HTTP statuses at the service edge.
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindValidationFailed, domain.KindInvalidInputFormat,
		domain.KindMissingRequiredField, domain.KindAIInvalidInput:
		return http.StatusBadRequest
	case domain.KindAuthInvalidToken, domain.KindAuthExpiredToken:
		return http.StatusUnauthorized
	case domain.KindAuthInsufficientPermissions:
		return http.StatusForbidden
	case domain.KindAIQuotaExceeded:
		return http.StatusPaymentRequired
	case domain.KindAIRateLimit, domain.KindAPIRateLimit:
		return http.StatusTooManyRequests
	case domain.KindAIQueueConflict:
		return http.StatusConflict
	case domain.KindAIServiceUnavailable, domain.KindAIServerOverload:
		return http.StatusServiceUnavailable
	case domain.KindNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type capabilityHealth struct {
	Enabled      bool   `json:"enabled"`
	Provider     string `json:"provider"`
	Model        string `json:"model,omitempty"`
	Credentialed bool   `json:"credentialed"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := map[string]capabilityHealth{
		"script": capHealth(s.cfg.Capabilities.Script),
		"image":  capHealth(s.cfg.Capabilities.Image),
		"voice":  capHealth(s.cfg.Capabilities.Voice),
		"video":  capHealth(s.cfg.Capabilities.Video),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":       "ok",
		"capabilities": report,
	})
}

func capHealth(cfg config.CapabilityConfig) capabilityHealth {
	return capabilityHealth{
		Enabled:      cfg.Enabled,
		Provider:     cfg.Provider,
		Model:        cfg.Model,
		Credentialed: cfg.Credential != "",
	}
}
