// Package errors provides structured error types for anchorbox.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout configuration errors are fatal for a layout pass and are reported
// before any box is measured:
//   - REFERENCE_NOT_FOUND: an anchor names a box that does not exist
//   - CYCLE_DETECTED: anchors form a cycle (including a box anchored to itself)
//   - DUPLICATE_ID: two sibling boxes share an id
//   - INVALID_MEASUREMENT: a size spec or a measurement is negative or NaN
//
// # Usage
//
//	err := errors.New(errors.ErrCodeReferenceNotFound, "box %q anchors to unknown box %q", id, ref)
//	if errors.Is(err, errors.ErrCodeReferenceNotFound) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidScene, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout configuration errors
	ErrCodeReferenceNotFound  Code = "REFERENCE_NOT_FOUND"
	ErrCodeCycleDetected      Code = "CYCLE_DETECTED"
	ErrCodeDuplicateID        Code = "DUPLICATE_ID"
	ErrCodeInvalidMeasurement Code = "INVALID_MEASUREMENT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// IsConfiguration reports whether err is a fatal layout configuration error,
// i.e. one the caller can only fix by changing the box declarations.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeReferenceNotFound, ErrCodeCycleDetected, ErrCodeDuplicateID, ErrCodeInvalidMeasurement:
		return true
	}
	return false
}
