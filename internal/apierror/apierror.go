// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}

// Kind classifies a failure for HTTP status mapping. Every error the services
// return is one of these four kinds; nothing is retried and nothing is
// swallowed — each failure surfaces exactly once to the caller.
type Kind int

const (
	KindValidation Kind = iota // missing/invalid required field, bad series tag
	KindDuplicate              // unique key already exists
	KindNotFound               // record does not resolve
	KindStorage                // underlying read/write failed
)

// Error is a classified service error. Cause, when set, is preserved for
// logging and unwrapping; its text is surfaced with storage failures.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }
func Duplicate(msg string) *Error  { return &Error{Kind: KindDuplicate, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }

func Storage(msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Cause: cause}
}

// HTTPStatus maps a classified error to its response code. Unclassified
// errors are treated as storage failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindDuplicate:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
