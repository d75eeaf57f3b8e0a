// Package errors defines the single error taxonomy every gateway operation
// returns (spec §4.1). Each variant is a concrete type implementing error
// (those that carry an underlying cause also implement Unwrap), following
// the same New*/Is* pairing across the board so callers can either
// type-switch or use errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is comparisons where no extra detail is
// carried.
var (
	ErrAuthenticationFailed = errors.New("ratatoskr: authentication failed")
	ErrNoProvider           = errors.New("ratatoskr: no provider configured")
	ErrUnsupported          = errors.New("ratatoskr: capability unsupported")
	ErrEmptyResponse        = errors.New("ratatoskr: empty response")
)

// HTTPError wraps a transport-level failure (connection refused, DNS,
// timeout) that never reached an HTTP response.
type HTTPError struct {
	Message string
	Cause   error
}

func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("http transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("http transport error: %s", e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Cause }

// NewHTTPError builds an HTTPError.
func NewHTTPError(message string, cause error) *HTTPError {
	return &HTTPError{Message: message, Cause: cause}
}

// IsHTTPError reports whether err is an *HTTPError.
func IsHTTPError(err error) bool {
	var target *HTTPError
	return errors.As(err, &target)
}

// APIError is a non-2xx HTTP response the provider returned.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api error [%d]: %s", e.Provider, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// NewAPIError builds an APIError.
func NewAPIError(provider string, statusCode int, message string, cause error) *APIError {
	return &APIError{Provider: provider, StatusCode: statusCode, Message: message, Cause: cause}
}

// IsAPIError reports whether err is an *APIError.
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// RateLimitedError is returned for HTTP 429, optionally carrying the
// provider's Retry-After value in seconds.
type RateLimitedError struct {
	Provider          string
	RetryAfterSeconds *int
	Message           string
	Cause             error
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfterSeconds != nil {
		return fmt.Sprintf("%s rate limited (retry after %ds): %s", e.Provider, *e.RetryAfterSeconds, e.Message)
	}
	return fmt.Sprintf("%s rate limited: %s", e.Provider, e.Message)
}

func (e *RateLimitedError) Unwrap() error { return e.Cause }

// NewRateLimitedError builds a RateLimitedError.
func NewRateLimitedError(provider, message string, retryAfterSeconds *int, cause error) *RateLimitedError {
	return &RateLimitedError{Provider: provider, Message: message, RetryAfterSeconds: retryAfterSeconds, Cause: cause}
}

// IsRateLimitedError reports whether err is a *RateLimitedError.
func IsRateLimitedError(err error) bool {
	var target *RateLimitedError
	return errors.As(err, &target)
}

// ModelNotFoundError is returned when a model id is unknown to the
// registry or provider (HTTP 404, §4.2).
type ModelNotFoundError struct {
	ID string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model not found: %s", e.ID)
}

// NewModelNotFoundError builds a ModelNotFoundError.
func NewModelNotFoundError(id string) *ModelNotFoundError {
	return &ModelNotFoundError{ID: id}
}

// IsModelNotFoundError reports whether err is a *ModelNotFoundError.
func IsModelNotFoundError(err error) bool {
	var target *ModelNotFoundError
	return errors.As(err, &target)
}

// StreamError terminates a stream without a trailing Done event (§4.4).
type StreamError struct {
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("stream error: %s", e.Message)
}

func (e *StreamError) Unwrap() error { return e.Cause }

// NewStreamError builds a StreamError.
func NewStreamError(message string, cause error) *StreamError {
	return &StreamError{Message: message, Cause: cause}
}

// IsStreamError reports whether err is a *StreamError.
func IsStreamError(err error) bool {
	var target *StreamError
	return errors.As(err, &target)
}

// JSONError wraps a marshal/unmarshal failure.
type JSONError struct {
	Detail string
	Cause  error
}

func (e *JSONError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("json error: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("json error: %s", e.Detail)
}

func (e *JSONError) Unwrap() error { return e.Cause }

// NewJSONError builds a JSONError.
func NewJSONError(detail string, cause error) *JSONError {
	return &JSONError{Detail: detail, Cause: cause}
}

// IsJSONError reports whether err is a *JSONError.
func IsJSONError(err error) bool {
	var target *JSONError
	return errors.As(err, &target)
}

// InvalidInputError is returned for caller-supplied input that fails
// validation before any request is sent (empty message list, bad preset
// reference, out-of-range parameter).
type InvalidInputError struct {
	Detail string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Detail)
}

func (e *InvalidInputError) Unwrap() error { return e.Cause }

// NewInvalidInputError builds an InvalidInputError.
func NewInvalidInputError(detail string, cause error) *InvalidInputError {
	return &InvalidInputError{Detail: detail, Cause: cause}
}

// IsInvalidInputError reports whether err is an *InvalidInputError.
func IsInvalidInputError(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// NotImplementedError is returned when the router has no provider
// registered for a capability (§4.3).
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Op)
}

// NewNotImplementedError builds a NotImplementedError.
func NewNotImplementedError(op string) *NotImplementedError {
	return &NotImplementedError{Op: op}
}

// IsNotImplementedError reports whether err is a *NotImplementedError.
func IsNotImplementedError(err error) bool {
	var target *NotImplementedError
	return errors.As(err, &target)
}

// ContentFilteredError is returned when a provider refuses to complete a
// request on safety grounds.
type ContentFilteredError struct {
	Reason string
}

func (e *ContentFilteredError) Error() string {
	return fmt.Sprintf("content filtered: %s", e.Reason)
}

// NewContentFilteredError builds a ContentFilteredError.
func NewContentFilteredError(reason string) *ContentFilteredError {
	return &ContentFilteredError{Reason: reason}
}

// IsContentFilteredError reports whether err is a *ContentFilteredError.
func IsContentFilteredError(err error) bool {
	var target *ContentFilteredError
	return errors.As(err, &target)
}

// ContextLengthExceededError is returned when the prompt exceeds a model's
// context window.
type ContextLengthExceededError struct {
	Limit int64
}

func (e *ContextLengthExceededError) Error() string {
	return fmt.Sprintf("context length exceeded: limit %d tokens", e.Limit)
}

// NewContextLengthExceededError builds a ContextLengthExceededError.
func NewContextLengthExceededError(limit int64) *ContextLengthExceededError {
	return &ContextLengthExceededError{Limit: limit}
}

// IsContextLengthExceededError reports whether err is a
// *ContextLengthExceededError.
func IsContextLengthExceededError(err error) bool {
	var target *ContextLengthExceededError
	return errors.As(err, &target)
}
