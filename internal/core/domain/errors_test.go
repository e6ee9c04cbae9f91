package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrValidation, "validation"},
		{ErrClarificationTimeout, "clarification_timeout"},
		{ErrAuth, "auth"},
		{ErrRateLimited, "rate_limited"},
		{ErrModelUnavailable, "model_unavailable"},
		{ErrTimeout, "timeout"},
		{ErrMalformedResponse, "malformed_response"},
		{ErrLLMUnavailable, "llm_unavailable"},
		{ErrPartialFailure, "partial_failure"},
		{errors.New("something else"), "internal"},
		{nil, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestErrorKind_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("draft FRD: %w", fmt.Errorf("role technical_writer: %w", ErrRateLimited))

	assert.Equal(t, "rate_limited", ErrorKind(err))
}

func TestRemediationHint(t *testing.T) {
	classified := []error{
		ErrValidation, ErrClarificationTimeout, ErrAuth, ErrRateLimited,
		ErrModelUnavailable, ErrTimeout, ErrMalformedResponse, ErrLLMUnavailable,
	}
	for _, err := range classified {
		hint := RemediationHint(err)
		assert.NotEmpty(t, hint)
		assert.NotEqual(t, "see the run log for details", hint, "error %v", err)
	}

	assert.Equal(t, "see the run log for details", RemediationHint(errors.New("boom")))
}
