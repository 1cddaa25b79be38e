package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error is the structured representation of any failure raised by the
// pipeline. It is created once, at the point a raw failure is classified,
// and treated as immutable afterwards.
type Error struct {
	Kind            Kind
	Message         string
	Source          string // origin component or provider name, may be empty
	Timestamp       time.Time
	RequestID       string
	Details         map[string]any // diagnostic payload, logged but never shown to users
	Retryable       bool
	UserMessage     string
	SuggestedAction string
}

// NewError creates an Error with a fresh timestamp and request ID.
// UserMessage defaults from the kind's message table and Retryable from the
// kind's retry policy; both can be adjusted by the caller before the error
// leaves the creation site.
func NewError(kind Kind, message string) *Error {
	return &Error{
		Kind:        kind,
		Message:     message,
		Timestamp:   time.Now().UTC(),
		RequestID:   newRequestID(),
		Retryable:   retryableByDefault[kind],
		UserMessage: UserMessage(kind),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WithSource sets the origin component and returns the error for chaining at
// the creation site.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}

// WithDetails merges diagnostic fields into the error's details map.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail adds a single diagnostic field.
func (e *Error) WithDetail(key string, value any) *Error {
	return e.WithDetails(map[string]any{key: value})
}

// WithRetryable overrides the kind's default retry eligibility.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithUserMessage overrides the default user-facing message.
func (e *Error) WithUserMessage(msg string) *Error {
	if msg != "" {
		e.UserMessage = msg
	}
	return e
}

// WithSuggestedAction sets the optional user-facing remediation hint.
func (e *Error) WithSuggestedAction(action string) *Error {
	e.SuggestedAction = action
	return e
}

// retryableByDefault is the retry policy per kind. Only generic generation
// failures and network errors are worth re-attempting without external
// intervention; quota, rate-limit, auth and validation failures are fatal on
// first occurrence.
var retryableByDefault = map[Kind]bool{
	KindAIGenerationFailed: true,
	KindNetworkError:       true,
}

// newRequestID returns an identifier unique to one error instance. Unix
// millis plus a random suffix; no cross-process coordination needed.
func newRequestID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("req_%d_%s", time.Now().UnixMilli(), suffix)
}
