// Package treetable implements a hash table with ordered-tree buckets.
package treetable

import (
	"errors"
	"fmt"
)

// Error is a table error with a structured error code.
//
// @design DS-0204
type Error struct {
	Code    string // Error code (e.g., "TT-KEY-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so sentinel comparisons survive WithDetails
// and WithCause copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, Cause: e.Cause}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, Cause: cause}
}

var (
	// ErrKeyNotFound indicates a get, delete, or pop of an absent key.
	// Absence is always surfaced; values may legitimately be zero, so a
	// zero value cannot stand in for "missing".
	ErrKeyNotFound = NewError("TT-KEY-4040", "key not found")

	// ErrKeyNotHashable indicates a key whose value cannot be hashed.
	// It is raised at the call boundary and never reaches a bucket.
	ErrKeyNotHashable = NewError("TT-KEY-4220", "key is not hashable")

	// ErrInvalidCapacity indicates construction with capacity <= 0.
	ErrInvalidCapacity = NewError("TT-CAP-4000", "capacity must be positive")
)

// IsKeyNotFound reports whether err is an ErrKeyNotFound.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
