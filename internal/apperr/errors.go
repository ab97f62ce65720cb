// Package apperr defines the error taxonomy shared by the tenancy core.
// Every failure returned by a lifecycle operation carries one of the codes
// below so callers can map it to a protocol status without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	// CodeNotFound indicates a referenced record does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodePermissionDenied indicates the actor may not perform the operation.
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// CodeValidation indicates malformed or missing input.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeConflict indicates a state-transition precondition was violated.
	CodeConflict Code = "CONFLICT"

	// CodeInternal indicates a store or infrastructure failure.
	CodeInternal Code = "INTERNAL"
)

// Error is the concrete error type returned by the core.
type Error struct {
	Code    Code
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Entity != "" {
		msg = e.Entity + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so errors.Is(err, ErrConflict)
// works against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Entity == "" && t.Message == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied}
	ErrValidation       = &Error{Code: CodeValidation}
	ErrConflict         = &Error{Code: CodeConflict}
	ErrInternal         = &Error{Code: CodeInternal}
)

func newError(code Code, entity, format string, args ...any) *Error {
	return &Error{Code: code, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record of the given entity.
func NotFound(entity string, id any) *Error {
	return newError(CodeNotFound, entity, "%v not found", id)
}

// PermissionDenied reports an authorization failure.
func PermissionDenied(entity, format string, args ...any) *Error {
	return newError(CodePermissionDenied, entity, format, args...)
}

// Validation reports invalid input.
func Validation(entity, format string, args ...any) *Error {
	return newError(CodeValidation, entity, format, args...)
}

// Conflict reports a violated state precondition.
func Conflict(entity, format string, args ...any) *Error {
	return newError(CodeConflict, entity, format, args...)
}

// Internal wraps an unexpected failure from a collaborator.
func Internal(entity string, err error, format string, args ...any) *Error {
	e := newError(CodeInternal, entity, format, args...)
	e.Err = err
	return e
}

// CodeOf returns the code carried by err, or CodeInternal for foreign errors
// and "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool         { return CodeOf(err) == CodeNotFound }
func IsPermissionDenied(err error) bool { return CodeOf(err) == CodePermissionDenied }
func IsValidation(err error) bool       { return CodeOf(err) == CodeValidation }
func IsConflict(err error) bool         { return CodeOf(err) == CodeConflict }
