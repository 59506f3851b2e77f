// Package errors provides structured error types for blockfill.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration validation failures
//   - *_NOT_FOUND: Resource not found
//   - OUT_OF_BOUNDS, NO_PENDING_PIECE: Engine invariant violations
//   - TOO_MANY_SESSIONS: The HTTP session registry is full
//   - INTERNAL_*: Unexpected internal errors
//
// Expected gameplay outcomes (an illegal drop, a hint with no unmet target)
// are never errors; they are reported as ordinary return values.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfBounds, "cell (%d,%d) outside %dx%d board", r, c, n, n)
//	if errors.Is(err, errors.ErrCodeOutOfBounds) {
//	    // programming error: the caller iterated past the grid
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidShape  Code = "INVALID_SHAPE"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Engine invariant violations
	ErrCodeOutOfBounds    Code = "OUT_OF_BOUNDS"
	ErrCodeNoPendingPiece Code = "NO_PENDING_PIECE"

	// Capacity errors
	ErrCodeTooManySessions Code = "TOO_MANY_SESSIONS"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err signals a broken engine invariant rather than
// bad user input. Fatal errors are not recoverable by retrying the request.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeOutOfBounds, ErrCodeNoPendingPiece, ErrCodeInternal:
		return true
	}
	return false
}
