// Package classify normalizes raw provider and transport failures into
// domain errors. All message-vocabulary heuristics live here so the matching
// rules stay centralized and unit-testable.
package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/movi008/rehabit/internal/core/domain"
)

// Op names the operation a failure came from, used to pick storage kinds.
type Op string

const (
	OpUpload   Op = "upload"
	OpDownload Op = "download"
	OpDelete   Op = "delete"
)

// Hint carries optional context about where a failure originated.
// Provider marks the AI-service call path; Op marks a storage operation.
type Hint struct {
	Provider string
	Op       Op
}

// statusCoder is satisfied by transport errors that observed an HTTP
// response. Checked via interface so this package stays decoupled from the
// provider transport.
type statusCoder interface {
	HTTPStatus() int
}

// Error maps a raw failure to a *domain.Error. It never fails itself: any
// unrecognized input becomes UNEXPECTED_ERROR with the raw value preserved
// in Details. Already-classified errors pass through unchanged.
func Error(err error, hint Hint) *domain.Error {
	if err == nil {
		return domain.NewError(domain.KindUnexpectedError, "classify called with nil error")
	}

	// Rule 1: idempotent pass-through.
	var derr *domain.Error
	if errors.As(err, &derr) {
		return derr
	}

	// Rule 2: HTTP-like status codes.
	var sc statusCoder
	if errors.As(err, &sc) {
		return fromStatus(sc.HTTPStatus(), err, hint)
	}

	// Rule 3: network-level failures are retryable.
	if isNetworkError(err) {
		return domain.NewError(domain.KindNetworkError, err.Error()).
			WithSource(hint.Provider).
			WithDetail("error", err.Error())
	}

	// Rule 4: AI-service call path, keyed on message vocabulary.
	if hint.Provider != "" {
		return fromAIMessage(err, hint.Provider)
	}

	// Rule 5: storage operations map per hint.
	if hint.Op != "" {
		return fromStorageOp(err, hint.Op)
	}

	// Rule 6: fallback.
	return domain.NewError(domain.KindUnexpectedError, err.Error()).
		WithDetail("error", fmt.Sprintf("%+v", err))
}

func fromStatus(status int, err error, hint Hint) *domain.Error {
	var kind domain.Kind
	switch {
	case status == 429:
		// Surfaced rather than silently retried, to avoid amplifying
		// provider load.
		kind = domain.KindAPIRateLimit
	case status == 401 || status == 403:
		kind = domain.KindAuthInsufficientPermissions
	default:
		kind = domain.KindAPIRequestFailed
	}
	return domain.NewError(kind, err.Error()).
		WithSource(hint.Provider).
		WithDetail("status", status)
}

func fromAIMessage(err error, provider string) *domain.Error {
	msg := strings.ToLower(err.Error())

	var kind domain.Kind
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "limit exceeded"):
		kind = domain.KindAIQuotaExceeded
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "validation"):
		kind = domain.KindAIInvalidInput
	default:
		kind = domain.KindAIGenerationFailed
	}
	return domain.NewError(kind, err.Error()).
		WithSource(provider).
		WithDetail("error", err.Error())
}

func fromStorageOp(err error, op Op) *domain.Error {
	var kind domain.Kind
	switch op {
	case OpUpload:
		kind = domain.KindStorageUploadFailed
	case OpDownload:
		kind = domain.KindStorageDownloadFailed
	case OpDelete:
		kind = domain.KindStorageDeleteFailed
	default:
		kind = domain.KindSystemError
	}
	return domain.NewError(kind, err.Error()).
		WithDetail("operation", string(op))
}

// isNetworkError reports whether err indicates no response was received:
// connection refused, timeout, DNS failure, or a cancelled/expired context.
func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error with a non-HTTP cause means the request never got a
		// response.
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout")
}
