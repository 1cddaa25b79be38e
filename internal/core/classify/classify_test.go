package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/movi008/rehabit/internal/core/domain"
)

// statusErr mimics the provider transport error without importing it.
type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string   { return e.msg }
func (e *statusErr) HTTPStatus() int { return e.status }

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   domain.Kind
	}{
		{429, domain.KindAPIRateLimit},
		{401, domain.KindAuthInsufficientPermissions},
		{403, domain.KindAuthInsufficientPermissions},
		{500, domain.KindAPIRequestFailed},
		{404, domain.KindAPIRequestFailed},
		{400, domain.KindAPIRequestFailed},
	}

	for _, tt := range tests {
		err := Error(&statusErr{status: tt.status, msg: "request failed"}, Hint{})
		if err.Kind != tt.kind {
			t.Errorf("status %d: kind = %s, want %s", tt.status, err.Kind, tt.kind)
		}
		if err.Details["status"] != tt.status {
			t.Errorf("status %d: Details[status] = %v", tt.status, err.Details["status"])
		}
	}
}

func TestError_RateLimitNotRetryable(t *testing.T) {
	err := Error(&statusErr{status: 429, msg: "too many requests"}, Hint{})
	if err.Retryable {
		t.Error("429 must be surfaced, not retried")
	}
}

func TestError_PassThrough(t *testing.T) {
	orig := domain.NewError(domain.KindAIQuotaExceeded, "quota hit")
	got := Error(orig, Hint{Provider: "openai"})
	if got != orig {
		t.Error("already-classified error was not passed through unchanged")
	}
	// Classifying twice yields the same instance.
	if Error(got, Hint{}) != orig {
		t.Error("double classification changed the error")
	}
}

func TestError_Network(t *testing.T) {
	tests := []error{
		context.DeadlineExceeded,
		&net.DNSError{Err: "no such host", Name: "api.example.com"},
		errors.New("dial tcp 127.0.0.1:443: connection refused"),
		errors.New("read tcp: i/o timeout"),
	}

	for _, raw := range tests {
		err := Error(raw, Hint{})
		if err.Kind != domain.KindNetworkError {
			t.Errorf("%v: kind = %s, want NETWORK_ERROR", raw, err.Kind)
		}
		if !err.Retryable {
			t.Errorf("%v: network errors must be retryable", raw)
		}
	}
}

func TestError_AIPath(t *testing.T) {
	tests := []struct {
		msg       string
		kind      domain.Kind
		retryable bool
	}{
		{"quota exceeded for project", domain.KindAIQuotaExceeded, false},
		{"rate limit reached for model", domain.KindAIQuotaExceeded, false},
		{"invalid prompt: too long", domain.KindAIInvalidInput, false},
		{"validation error in request body", domain.KindAIInvalidInput, false},
		{"model produced no output", domain.KindAIGenerationFailed, true},
		{"internal inference failure", domain.KindAIGenerationFailed, true},
	}

	for _, tt := range tests {
		err := Error(errors.New(tt.msg), Hint{Provider: "elevenlabs"})
		if err.Kind != tt.kind {
			t.Errorf("%q: kind = %s, want %s", tt.msg, err.Kind, tt.kind)
		}
		if err.Retryable != tt.retryable {
			t.Errorf("%q: retryable = %v, want %v", tt.msg, err.Retryable, tt.retryable)
		}
		if err.Source != "elevenlabs" {
			t.Errorf("%q: source = %q, want provider name", tt.msg, err.Source)
		}
	}
}

func TestError_StorageOps(t *testing.T) {
	tests := []struct {
		op   Op
		kind domain.Kind
	}{
		{OpUpload, domain.KindStorageUploadFailed},
		{OpDownload, domain.KindStorageDownloadFailed},
		{OpDelete, domain.KindStorageDeleteFailed},
		{Op("move"), domain.KindSystemError},
	}

	for _, tt := range tests {
		err := Error(errors.New("disk full"), Hint{Op: tt.op})
		if err.Kind != tt.kind {
			t.Errorf("op %q: kind = %s, want %s", tt.op, err.Kind, tt.kind)
		}
	}
}

func TestError_Fallback(t *testing.T) {
	err := Error(fmt.Errorf("something odd happened"), Hint{})
	if err.Kind != domain.KindUnexpectedError {
		t.Errorf("kind = %s, want UNEXPECTED_ERROR", err.Kind)
	}
	if err.Details["error"] == nil {
		t.Error("raw error not preserved in details")
	}
	if err.UserMessage == "" {
		t.Error("UserMessage not populated")
	}
}

func TestError_NilInput(t *testing.T) {
	if err := Error(nil, Hint{}); err.Kind != domain.KindUnexpectedError {
		t.Errorf("nil input: kind = %s, want UNEXPECTED_ERROR", err.Kind)
	}
}

func TestError_FreshIdentityPerClassification(t *testing.T) {
	a := Error(errors.New("boom"), Hint{})
	b := Error(errors.New("boom"), Hint{})
	if a.RequestID == b.RequestID {
		t.Error("classifications share a RequestID")
	}
}
