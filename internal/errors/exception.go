package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindUnauthorized         Kind = "unauthorized"
	KindNotFound             Kind = "not_found"
	KindConflict             Kind = "conflict"
	KindPayloadTooLarge      Kind = "payload_too_large"
	KindUnsupportedMediaType Kind = "unsupported_media_type"
	KindRateLimited          Kind = "rate_limited"
	KindInternal             Kind = "internal"
)

// Exception is a client-facing failure. Message is safe to return to the
// caller as is; StatusCode is the transport status it renders as.
type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// KindOf reports the classification of err. Anything that is not an
// Exception is internal.
func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the client-facing text for err, hiding internal details.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrInternal.Message
}

func InvalidInput(message string) *Exception {
	return &Exception{
		Kind:       KindInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
