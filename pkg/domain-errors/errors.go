// Package dErrors provides coded domain errors so services can classify
// failures without leaking transport concerns. Handlers map codes to HTTP
// status; stores and services only ever speak in codes.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeNotFound covers unknown journeys, steps, schemas, and artifacts.
	CodeNotFound Code = "not_found"
	// CodeBadRequest covers malformed input rejected before any side effect.
	CodeBadRequest Code = "bad_request"
	// CodeConflict covers operations that lost to an earlier state change.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation covers entity state transitions that are not
	// allowed, e.g. moving a completed step backwards.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeStorageFailure covers I/O failures on artifact or ledger writes.
	// These are correctness failures and must always propagate.
	CodeStorageFailure Code = "storage_failure"
	// CodeUnauthorized covers missing or invalid credentials on admin routes.
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal is the catch-all for unexpected failures.
	CodeInternal Code = "internal"
)

// Error is a domain error with a machine-readable code.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is / errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			break
		}
	}
	return false
}

// CodeOf returns the code of the outermost domain error, or CodeInternal
// when err carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
