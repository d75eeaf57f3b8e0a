// Package httperror maps the shared httpclient.StatusError onto the
// provider error taxonomy (spec §4.2, §7): 401 authentication failures,
// 404 unknown models, 429 rate limits (propagating Retry-After), and 5xx
// API errors, including the no-retry 503 "model loading" case.
package httperror

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/emesal/ratatoskr/pkg/internal/httpclient"
	"github.com/emesal/ratatoskr/pkg/provider/errors"
)

// Map converts err into the matching provider error. An
// *httpclient.StatusError is mapped by MapStatus; every other non-nil error
// (transport failures, and DoJSON's request-encoding and response-decoding
// failures) becomes an *errors.HTTPError.
func Map(providerName string, err error) error {
	if err == nil {
		return nil
	}

	statusErr, ok := err.(*httpclient.StatusError)
	if !ok {
		return errors.NewHTTPError(providerName+" request failed", err)
	}

	return MapStatus(providerName, statusErr.StatusCode, statusErr.Body, statusErr.Header, statusErr)
}

// MapStatus maps a raw HTTP status/body/header onto the provider error
// taxonomy, for adapters that inspect *httpclient.Response directly rather
// than going through DoJSON/DoStream's *httpclient.StatusError path.
func MapStatus(providerName string, statusCode int, body []byte, header http.Header, cause error) error {
	text := string(body)

	switch {
	case statusCode == http.StatusUnauthorized:
		return errors.ErrAuthenticationFailed
	case statusCode == http.StatusNotFound:
		return errors.NewModelNotFoundError(extractModelID(text))
	case statusCode == http.StatusTooManyRequests:
		return errors.NewRateLimitedError(providerName, text, retryAfterSecondsFromHeader(header), cause)
	case statusCode == http.StatusServiceUnavailable && isModelLoading(text):
		return errors.NewAPIError(providerName, http.StatusServiceUnavailable, text, cause)
	default:
		return errors.NewAPIError(providerName, statusCode, text, cause)
	}
}

func retryAfterSecondsFromHeader(header http.Header) *int {
	if header == nil {
		return nil
	}
	raw := header.Get("Retry-After")
	if raw == "" {
		return nil
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &seconds
}

// isModelLoading matches the "model loading" marker HuggingFace and
// Ollama-compatible backends put in the body of a transient 503.
func isModelLoading(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "loading") || strings.Contains(lower, "is currently loading")
}

// extractModelID best-effort pulls a model identifier out of a 404 body
// for ModelNotFoundError; providers don't agree on a shape here so this
// falls back to the raw body.
func extractModelID(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
