package domain

// genericUserMessage covers every kind without a specific entry below.
const genericUserMessage = "An unexpected error occurred. Please try again later."

// userMessages maps kinds to their default user-facing message. Details and
// internal messages are never shown to end users; this table is the only
// user-visible surface of the taxonomy.
var userMessages = map[Kind]string{
	KindAIQuotaExceeded: "You've reached your usage limit. Please upgrade your plan to continue.",
	KindAIRateLimit:     "Too many requests. Please wait a moment and try again.",
	KindAIServerOverload: "AI services are experiencing high demand. " +
		"Please try again in a few moments.",
	KindAIQueueConflict: "Another generation is already in progress. Please wait for it to complete.",
	KindAIInvalidInput:  "The input provided is invalid. Please check your prompt and try again.",
	KindNetworkError:    "Connection failed. Please check your network and try again.",
}

// UserMessage returns the default user-facing message for a kind.
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return genericUserMessage
}
