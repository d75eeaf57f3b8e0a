package rpc

import (
	stderrors "errors"
	"fmt"

	coreerrors "github.com/emesal/ratatoskr/pkg/provider/errors"
)

// WireCode enumerates the small set of status codes the wire protocol
// carries, following the core->wire table (§4.7).
type WireCode string

const (
	CodeNotFound          WireCode = "NOT_FOUND"
	CodeResourceExhausted WireCode = "RESOURCE_EXHAUSTED"
	CodeInvalidArgument   WireCode = "INVALID_ARGUMENT"
	CodeUnauthenticated   WireCode = "UNAUTHENTICATED"
	CodeUnimplemented     WireCode = "UNIMPLEMENTED"
	CodeInternal          WireCode = "INTERNAL"
)

// WireError is the JSON shape every non-nil error takes on the wire.
type WireError struct {
	Code              WireCode `json:"code"`
	Message           string   `json:"message"`
	RetryAfterSeconds *int     `json:"retry_after_seconds,omitempty"`
	ModelID           string   `json:"model_id,omitempty"`
	ContextLimit      int64    `json:"context_limit,omitempty"`
}

func (e *WireError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError translates a core error into its wire representation (§4.7):
// ModelNotFound -> NOT_FOUND, RateLimited -> RESOURCE_EXHAUSTED (+retry
// detail), InvalidInput -> INVALID_ARGUMENT, AuthenticationFailed ->
// UNAUTHENTICATED, NotImplemented/Unsupported -> UNIMPLEMENTED, and
// everything else (Api/Stream/Http/Json/EmptyResponse/ContentFiltered/
// ContextLengthExceeded) -> INTERNAL, carrying typed detail where the
// table calls for it.
func MapError(err error) *WireError {
	if err == nil {
		return nil
	}

	var notFound *coreerrors.ModelNotFoundError
	if stderrors.As(err, &notFound) {
		return &WireError{Code: CodeNotFound, Message: err.Error(), ModelID: notFound.ID}
	}

	var rateLimited *coreerrors.RateLimitedError
	if stderrors.As(err, &rateLimited) {
		return &WireError{Code: CodeResourceExhausted, Message: err.Error(), RetryAfterSeconds: rateLimited.RetryAfterSeconds}
	}

	var invalidInput *coreerrors.InvalidInputError
	if stderrors.As(err, &invalidInput) {
		return &WireError{Code: CodeInvalidArgument, Message: err.Error()}
	}

	if stderrors.Is(err, coreerrors.ErrAuthenticationFailed) {
		return &WireError{Code: CodeUnauthenticated, Message: err.Error()}
	}

	var notImplemented *coreerrors.NotImplementedError
	if stderrors.As(err, &notImplemented) || stderrors.Is(err, coreerrors.ErrUnsupported) {
		return &WireError{Code: CodeUnimplemented, Message: err.Error()}
	}

	var contextExceeded *coreerrors.ContextLengthExceededError
	if stderrors.As(err, &contextExceeded) {
		return &WireError{Code: CodeInternal, Message: err.Error(), ContextLimit: contextExceeded.Limit}
	}

	return &WireError{Code: CodeInternal, Message: err.Error()}
}

// UnmapError reconstructs a core-shaped error from a wire error. The
// NotFound, ResourceExhausted, InvalidArgument, Unauthenticated, and
// Unimplemented codes come back as ModelNotFoundError, RateLimitedError,
// InvalidInputError, ErrAuthenticationFailed, and NotImplementedError; every
// other code, Internal included, comes back as an APIError from provider
// "remote" carrying the wire message, whatever the original core type was.
func UnmapError(w *WireError) error {
	if w == nil {
		return nil
	}
	switch w.Code {
	case CodeNotFound:
		return coreerrors.NewModelNotFoundError(w.ModelID)
	case CodeResourceExhausted:
		return coreerrors.NewRateLimitedError("remote", w.Message, w.RetryAfterSeconds, nil)
	case CodeInvalidArgument:
		return coreerrors.NewInvalidInputError(w.Message, nil)
	case CodeUnauthenticated:
		return coreerrors.ErrAuthenticationFailed
	case CodeUnimplemented:
		return coreerrors.NewNotImplementedError(w.Message)
	default:
		return coreerrors.NewAPIError("remote", 0, w.Message, nil)
	}
}
