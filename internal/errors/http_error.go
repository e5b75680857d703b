package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for the error classes the booking flow distinguishes.
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	ErrValidation   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrUnexpected   = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)

// ErrUpstream carries through the status code reported by an external
// service, so a calendar-side rejection reaches the caller unchanged.
func ErrUpstream(code int, msg string) *HTTPError {
	if code == 0 {
		code = http.StatusBadGateway
	}
	return NewHTTPError(code, msg)
}
