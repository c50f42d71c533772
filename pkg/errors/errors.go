package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound reports a dereferenced entry, sense or synset id with no record.
	ErrNotFound = errors.New("not found")
	// ErrInconsistent reports a reference that resolves to a missing target.
	ErrInconsistent = errors.New("inconsistent reference")
	// ErrFormat reports an undecodable document field or an incompatible snapshot.
	ErrFormat = errors.New("format error")
	// ErrState reports a query made before a load completed, or an index
	// pointing at a missing primary record.
	ErrState        = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrTimeout      = errors.New("operation timed out")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// NotFoundf wraps ErrNotFound with a formatted description of the missing record.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Inconsistentf wraps ErrInconsistent with a description of the reference
// that could not be resolved.
func Inconsistentf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInconsistent)
}

// Formatf wraps ErrFormat with a formatted description of the decode failure.
func Formatf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrFormat)
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrState), errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
