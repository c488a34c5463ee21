// Package errors provides structured error types for tiletopo.
//
// Wire normalization and tile-type construction treat every malformed or
// unrecognized name as a database-integrity violation. Instead of aborting,
// the failing operation returns an [*Error] carrying a machine-readable
// [Code]; callers decide whether to abort the whole build or report and
// skip. No operation in this module silently continues after such an error.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - GRAMMAR_*, AMBIGUOUS_*: wire naming violations
//   - INVALID_*: input validation failures
//   - NOT_FOUND_*, *_NOT_FOUND: resource not found
//   - NETWORK_*, DATABASE_*: collaborator failures
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGrammar, "invalid wire name %q", name)
//	if errors.Is(err, errors.ErrCodeGrammar) {
//	    // Handle grammar violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDatabase, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Wire naming violations
	ErrCodeGrammar   Code = "GRAMMAR_VIOLATION"
	ErrCodeAmbiguous Code = "AMBIGUOUS_CLASSIFICATION"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidName  Code = "INVALID_NAME"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeTileTypeNotFound Code = "TILETYPE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Collaborator errors
	ErrCodeDatabase Code = "DATABASE_CORRUPT"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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

// IsFatal reports whether err is a database-integrity violation, i.e. a
// grammar or classification failure that must abort a database build.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeGrammar, ErrCodeAmbiguous, ErrCodeDatabase:
		return true
	}
	return false
}
