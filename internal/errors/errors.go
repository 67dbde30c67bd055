// Package errors provides standardized domain errors with codes for the WatchVault API.
//
// Services return typed errors; handlers either check them with errors.Is or
// inspect the Code for switch dispatch. Every code maps to an HTTP status so
// the API layer never hand-picks status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION"
	CodeInvalidRating    Code = "INVALID_RATING"
	CodePersistenceRead  Code = "PERSISTENCE_READ"
	CodePersistenceWrite Code = "PERSISTENCE_WRITE"
	CodeExportFailed     Code = "EXPORT_FAILED"
	CodeUpstream         Code = "UPSTREAM"
	CodeInternal         Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInvalidRating:
		return http.StatusBadRequest
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeExportFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation       = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInvalidRating    = &Error{Code: CodeInvalidRating, Message: "rating out of range"}
	ErrPersistenceRead  = &Error{Code: CodePersistenceRead, Message: "persisted watchlist unreadable"}
	ErrPersistenceWrite = &Error{Code: CodePersistenceWrite, Message: "watchlist write failed"}
	ErrExportFailed     = &Error{Code: CodeExportFailed, Message: "export failed"}
	ErrUpstream         = &Error{Code: CodeUpstream, Message: "catalog provider error"}
	ErrInternal         = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// InvalidRating creates an invalid rating error.
func InvalidRating(msg string) *Error {
	return &Error{Code: CodeInvalidRating, Message: msg}
}

// InvalidRatingf creates an invalid rating error with formatted message.
func InvalidRatingf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidRating, Message: fmt.Sprintf(format, args...)}
}

// ExportFailed creates an export failure error.
func ExportFailed(msg string) *Error {
	return &Error{Code: CodeExportFailed, Message: msg}
}

// Upstream creates a catalog provider error.
func Upstream(msg string) *Error {
	return &Error{Code: CodeUpstream, Message: msg}
}

// Upstreamf creates a catalog provider error with formatted message.
func Upstreamf(format string, args ...any) *Error {
	return &Error{Code: CodeUpstream, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
