package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates bad input paths or arguments.
	// Always raised before any external call, always fatal to the run.
	ErrValidation = errors.New("validation failed")

	// ErrClarificationTimeout indicates the interactive clarification loop
	// exceeded its round limit without resolving the ambiguity.
	ErrClarificationTimeout = errors.New("clarification round limit exceeded")

	// ErrPartialFailure indicates one or more, but not all, requested
	// document types failed. Reported as a degraded success.
	ErrPartialFailure = errors.New("some document types failed")

	// ErrLLMUnavailable indicates no LLM provider is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Upstream errors classify failures of the external LLM service.

	// ErrAuth indicates the provider rejected the configured credential.
	ErrAuth = errors.New("authentication rejected")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrModelUnavailable indicates the requested model or deployment
	// does not exist or is not currently serving.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrTimeout indicates the provider call did not complete in time.
	ErrTimeout = errors.New("upstream timeout")

	// ErrMalformedResponse indicates the provider returned output that
	// could not be parsed into the expected structure.
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind returns the short classification label for a failure, for use
// in run logs and package results. Unclassified errors report as "internal".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrClarificationTimeout):
		return "clarification_timeout"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrLLMUnavailable):
		return "llm_unavailable"
	case errors.Is(err, ErrPartialFailure):
		return "partial_failure"
	default:
		return "internal"
	}
}

// RemediationHint returns a short actionable hint for a classified failure.
// Raw transport errors are never shown to the user without one of these.
func RemediationHint(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "check the provided paths and arguments"
	case errors.Is(err, ErrClarificationTimeout):
		return "re-run with a more specific request"
	case errors.Is(err, ErrAuth):
		return "check the configured API key or credential"
	case errors.Is(err, ErrRateLimited):
		return "check your service quota and retry later"
	case errors.Is(err, ErrModelUnavailable):
		return "verify the configured model or deployment name"
	case errors.Is(err, ErrTimeout):
		return "retry; the provider did not respond in time"
	case errors.Is(err, ErrMalformedResponse):
		return "retry; the model returned unparseable output"
	case errors.Is(err, ErrLLMUnavailable):
		return "configure an LLM provider in settings"
	default:
		return "see the run log for details"
	}
}
