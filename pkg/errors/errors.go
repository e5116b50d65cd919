// Package errors provides structured error types for barsvg.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The render path raises exactly three input errors, all at the encoder
// adapter boundary:
//   - EMPTY_VALUE: the value to encode is missing or zero-length
//   - INVALID_FORMAT: no encoder is registered for the requested symbology
//   - INVALID_VALUE: the symbology rejected the value
//
// Layout and pattern problems (INVALID_LAYOUT, INVALID_PATTERN) are caller
// contract violations of the geometry compiler. The remaining codes are used
// by the outer surfaces (CLI, server, batch manifests).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "no encoder registered for %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle unknown symbology
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidValue, cause, "value rejected by %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Encoder adapter errors
	ErrCodeEmptyValue    Code = "EMPTY_VALUE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidValue  Code = "INVALID_VALUE"

	// Geometry compiler errors
	ErrCodeInvalidLayout  Code = "INVALID_LAYOUT"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for the outermost *Error and compares its code.
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

// IsInputError reports whether err is one of the deterministic input errors
// raised by the render path. Retrying such an error without changing the
// inputs cannot succeed.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmptyValue, ErrCodeInvalidFormat, ErrCodeInvalidValue,
		ErrCodeInvalidLayout, ErrCodeInvalidPattern, ErrCodeInvalidInput:
		return true
	}
	return false
}
