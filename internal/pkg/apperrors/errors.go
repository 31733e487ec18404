package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for use with errors.Is()
var (
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrConfiguration = errors.New("configuration error")
	ErrGateway       = errors.New("gateway error")
	ErrInternal      = errors.New("internal server error")
)

// AppError carries a user-facing message alongside the sentinel it wraps.
// The error-handler middleware maps it to an HTTP response.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, message string) *AppError {
	return &AppError{Err: err, Message: message}
}

// Validation is a 400 with the exact message shown to the client.
func Validation(message string) *AppError {
	return New(ErrValidation, message)
}

// NotFound deliberately covers both "missing" and "not owned" so callers
// cannot probe for existence of other users' resources.
func NotFound(message string) *AppError {
	return New(ErrNotFound, message)
}

func Unauthorized() *AppError {
	return New(ErrUnauthorized, "Unauthorized")
}

func Configuration(message string) *AppError {
	return New(ErrConfiguration, message)
}

func Gateway(err error, message string) *AppError {
	if err == nil {
		return New(ErrGateway, message)
	}
	return &AppError{Err: errors.Join(ErrGateway, err), Message: message}
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error. Unknown errors get
// generic fallback text so internals never leak into responses.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	if errors.Is(err, ErrGateway) || errors.Is(err, ErrConfiguration) {
		return err.Error()
	}
	return "Internal server error"
}
