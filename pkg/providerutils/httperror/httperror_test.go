package httperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	providererrors "github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap401IsAuthenticationFailed(t *testing.T) {
	err := Map("anthropic", &httpclient.StatusError{StatusCode: http.StatusUnauthorized, Body: []byte("bad key")})
	assert.True(t, errors.Is(err, providererrors.ErrAuthenticationFailed))
}

func TestMap404IsModelNotFound(t *testing.T) {
	err := Map("ollama", &httpclient.StatusError{StatusCode: http.StatusNotFound, Body: []byte("model xyz missing")})
	require.True(t, providererrors.IsModelNotFoundError(err))
}

func TestMap429PropagatesRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "30")
	err := Map("openrouter", &httpclient.StatusError{StatusCode: http.StatusTooManyRequests, Body: []byte("slow down"), Header: header})
	require.True(t, providererrors.IsRateLimitedError(err))
	var rateLimited *providererrors.RateLimitedError
	require.True(t, errors.As(err, &rateLimited))
	require.NotNil(t, rateLimited.RetryAfterSeconds)
	assert.Equal(t, 30, *rateLimited.RetryAfterSeconds)
}

func TestMap503ModelLoadingIsAPIError(t *testing.T) {
	err := Map("huggingface", &httpclient.StatusError{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{"error":"Model is currently loading"}`)})
	require.True(t, providererrors.IsAPIError(err))
	var apiErr *providererrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
}

func TestMap5xxIsAPIError(t *testing.T) {
	err := Map("anthropic", &httpclient.StatusError{StatusCode: 500, Body: []byte("internal error")})
	require.True(t, providererrors.IsAPIError(err))
}

func TestMapNonStatusErrorBecomesHTTPError(t *testing.T) {
	err := Map("anthropic", errors.New("connection refused"))
	assert.True(t, providererrors.IsHTTPError(err))
}
