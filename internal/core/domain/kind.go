package domain

// Kind classifies a failure by origin. The set is closed: every error raised
// by the generation pipeline carries exactly one of these values.
type Kind string

const (
	// AI provider failures
	KindAIServiceUnavailable Kind = "AI_SERVICE_UNAVAILABLE"
	KindAIGenerationFailed   Kind = "AI_GENERATION_FAILED"
	KindAIQuotaExceeded      Kind = "AI_QUOTA_EXCEEDED"
	KindAIInvalidInput       Kind = "AI_INVALID_INPUT"
	KindAIRateLimit          Kind = "AI_RATE_LIMIT"
	KindAIServerOverload     Kind = "AI_SERVER_OVERLOAD"
	KindAIQueueConflict      Kind = "AI_QUEUE_CONFLICT"

	// Authentication failures
	KindAuthInvalidToken            Kind = "AUTH_INVALID_TOKEN"
	KindAuthExpiredToken            Kind = "AUTH_EXPIRED_TOKEN"
	KindAuthInsufficientPermissions Kind = "AUTH_INSUFFICIENT_PERMISSIONS"

	// Transport/API failures
	KindAPIRequestFailed   Kind = "API_REQUEST_FAILED"
	KindAPIRateLimit       Kind = "API_RATE_LIMIT"
	KindAPIInvalidResponse Kind = "API_INVALID_RESPONSE"

	// Storage failures
	KindStorageUploadFailed   Kind = "STORAGE_UPLOAD_FAILED"
	KindStorageDownloadFailed Kind = "STORAGE_DOWNLOAD_FAILED"
	KindStorageDeleteFailed   Kind = "STORAGE_DELETE_FAILED"

	// Validation failures
	KindValidationFailed     Kind = "VALIDATION_FAILED"
	KindInvalidInputFormat   Kind = "INVALID_INPUT_FORMAT"
	KindMissingRequiredField Kind = "MISSING_REQUIRED_FIELD"

	// System failures
	KindSystemError     Kind = "SYSTEM_ERROR"
	KindNetworkError    Kind = "NETWORK_ERROR"
	KindUnexpectedError Kind = "UNEXPECTED_ERROR"
)

// Kinds lists every known kind, useful for exhaustiveness checks in tests.
var Kinds = []Kind{
	KindAIServiceUnavailable,
	KindAIGenerationFailed,
	KindAIQuotaExceeded,
	KindAIInvalidInput,
	KindAIRateLimit,
	KindAIServerOverload,
	KindAIQueueConflict,
	KindAuthInvalidToken,
	KindAuthExpiredToken,
	KindAuthInsufficientPermissions,
	KindAPIRequestFailed,
	KindAPIRateLimit,
	KindAPIInvalidResponse,
	KindStorageUploadFailed,
	KindStorageDownloadFailed,
	KindStorageDeleteFailed,
	KindValidationFailed,
	KindInvalidInputFormat,
	KindMissingRequiredField,
	KindSystemError,
	KindNetworkError,
	KindUnexpectedError,
}
