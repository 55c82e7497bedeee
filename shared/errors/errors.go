package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError means the caller sent malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PermissionError means the actor's role does not allow the action.
// Unauthenticated is set when there is no actor at all.
type PermissionError struct {
	Message         string
	Unauthenticated bool
}

func (e *PermissionError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictError means an optimistic precondition or a board invariant failed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StoreError wraps an unclassified persistence failure. Its message is
// generic on purpose; the cause is available through Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether err (or anything it wraps) is of type T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// As returns the first error in err's chain of type T.
func As[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}

// StatusCode maps an error to the HTTP status it should be reported with.
func StatusCode(err error) int {
	if e, ok := As[*ErrorWithStatusCode](err); ok {
		return e.StatusCode
	}
	if e, ok := As[*PermissionError](err); ok {
		if e.Unauthenticated {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	}
	switch {
	case Is[*ValidationError](err):
		return http.StatusBadRequest
	case Is[*NotFoundError](err):
		return http.StatusNotFound
	case Is[*ConflictError](err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// FromStatus rebuilds a typed error from an HTTP status and message body.
// Used by clients talking to the API.
func FromStatus(status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		return &ValidationError{Message: message}
	case http.StatusUnauthorized:
		return &PermissionError{Message: message, Unauthenticated: true}
	case http.StatusForbidden:
		return &PermissionError{Message: message}
	case http.StatusNotFound:
		return &NotFoundError{Message: message}
	case http.StatusConflict:
		return &ConflictError{Message: message}
	case http.StatusTooManyRequests:
		return &ErrorWithStatusCode{Message: message, StatusCode: status}
	}
	return &StoreError{Op: "complete request", Err: &ErrorWithStatusCode{Message: message, StatusCode: status}}
}
