package domain

import (
	"strings"
	"testing"
)

func TestNewError_PopulatesDefaults(t *testing.T) {
	err := NewError(KindAIQuotaExceeded, "quota exceeded for project")

	if err.Kind != KindAIQuotaExceeded {
		t.Errorf("Kind = %s, want %s", err.Kind, KindAIQuotaExceeded)
	}
	if err.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if err.RequestID == "" {
		t.Error("RequestID not set")
	}
	if !strings.HasPrefix(err.RequestID, "req_") {
		t.Errorf("RequestID %q missing req_ prefix", err.RequestID)
	}
	if err.UserMessage == "" {
		t.Error("UserMessage not populated")
	}
	if err.Retryable {
		t.Error("quota errors must not be retryable by default")
	}
}

func TestNewError_UniqueRequestIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		err := NewError(KindSystemError, "boom")
		if seen[err.RequestID] {
			t.Fatalf("duplicate RequestID %q", err.RequestID)
		}
		seen[err.RequestID] = true
	}
}

func TestRetryableDefaults(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindAIGenerationFailed, true},
		{KindNetworkError, true},
		{KindAIQuotaExceeded, false},
		{KindAIRateLimit, false},
		{KindAPIRateLimit, false},
		{KindAuthInsufficientPermissions, false},
		{KindValidationFailed, false},
		{KindAIServiceUnavailable, false},
	}

	for _, tt := range tests {
		if got := NewError(tt.kind, "x").Retryable; got != tt.retryable {
			t.Errorf("NewError(%s).Retryable = %v, want %v", tt.kind, got, tt.retryable)
		}
	}
}

func TestUserMessage_EveryKindCovered(t *testing.T) {
	for _, kind := range Kinds {
		if UserMessage(kind) == "" {
			t.Errorf("UserMessage(%s) is empty", kind)
		}
	}
	// Unknown kinds fall back to the generic message rather than panicking.
	if UserMessage(Kind("BOGUS")) != genericUserMessage {
		t.Error("unknown kind did not fall back to generic message")
	}
}

func TestError_ErrorString(t *testing.T) {
	err := NewError(KindAIGenerationFailed, "model timed out").WithSource("openai")
	want := "AI_GENERATION_FAILED (openai): model timed out"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_WithDetails(t *testing.T) {
	err := NewError(KindSystemError, "boom").
		WithDetail("stage", "voiceover").
		WithDetails(map[string]any{"status": 500})

	if err.Details["stage"] != "voiceover" {
		t.Errorf("Details[stage] = %v", err.Details["stage"])
	}
	if err.Details["status"] != 500 {
		t.Errorf("Details[status] = %v", err.Details["status"])
	}
}
