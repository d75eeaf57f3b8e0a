package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAPIError("anthropic", 500, "internal error", cause)

	assert.Contains(t, err.Error(), "anthropic")
	assert.Contains(t, err.Error(), "500")
	assert.True(t, IsAPIError(err))
	assert.False(t, IsAPIError(cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestRateLimitedErrorWithRetryAfter(t *testing.T) {
	retryAfter := 30
	err := NewRateLimitedError("openrouter", "rate limited", &retryAfter, nil)

	assert.Contains(t, err.Error(), "30")
	assert.True(t, IsRateLimitedError(err))
	assert.Equal(t, 30, *err.RetryAfterSeconds)
}

func TestRateLimitedErrorWithoutRetryAfter(t *testing.T) {
	err := NewRateLimitedError("openrouter", "rate limited", nil, nil)
	assert.Nil(t, err.RetryAfterSeconds)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestModelNotFoundError(t *testing.T) {
	err := NewModelNotFoundError("ghost-model")
	assert.Contains(t, err.Error(), "ghost-model")
	assert.True(t, IsModelNotFoundError(err))
}

func TestStreamErrorHasNoDoneSemantics(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStreamError("truncated mid tool call", cause)

	assert.Contains(t, err.Error(), "truncated mid tool call")
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, IsStreamError(err))
	assert.Equal(t, cause, err.Unwrap())
}

func TestJSONError(t *testing.T) {
	err := NewJSONError("unexpected token", nil)
	assert.True(t, IsJSONError(err))
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("message list must not be empty", nil)
	assert.True(t, IsInvalidInputError(err))
	assert.Contains(t, err.Error(), "message list")
}

func TestNotImplementedError(t *testing.T) {
	err := NewNotImplementedError("classify")
	assert.True(t, IsNotImplementedError(err))
	assert.Contains(t, err.Error(), "classify")
}

func TestContentFilteredError(t *testing.T) {
	err := NewContentFilteredError("safety")
	assert.True(t, IsContentFilteredError(err))
	assert.Contains(t, err.Error(), "safety")
}

func TestContextLengthExceededError(t *testing.T) {
	err := NewContextLengthExceededError(8192)
	assert.True(t, IsContextLengthExceededError(err))
	assert.Contains(t, err.Error(), "8192")
}

func TestSentinelErrors(t *testing.T) {
	assert.Error(t, ErrAuthenticationFailed)
	assert.Error(t, ErrNoProvider)
	assert.Error(t, ErrUnsupported)
	assert.Error(t, ErrEmptyResponse)
}

func TestHTTPError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewHTTPError("connect failed", cause)
	assert.True(t, IsHTTPError(err))
	assert.Equal(t, cause, err.Unwrap())
}
