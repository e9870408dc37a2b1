// Package errors defines the sentinel errors shared by the engine and its
// service layers, plus an AppError type that carries an HTTP status code.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDuplicateDocument = errors.New("document already indexed")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInternal          = errors.New("internal error")
	ErrTimeout           = errors.New("operation timed out")
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

// Duplicate reports an AddDocument call for an identifier that is already
// indexed.
func Duplicate(id any) *AppError {
	return Newf(ErrDuplicateDocument, http.StatusConflict, "document %v", id)
}

// NotFound reports an operation on an identifier that is not indexed.
func NotFound(id any) *AppError {
	return Newf(ErrDocumentNotFound, http.StatusNotFound, "document %v", id)
}

// InvalidArgument reports a rejected parameter value.
func InvalidArgument(format string, args ...any) *AppError {
	return Newf(ErrInvalidArgument, http.StatusBadRequest, format, args...)
}

func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateDocument):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
