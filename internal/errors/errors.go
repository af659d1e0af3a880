// Package errors defines the stable error codes used across pygraph.
//
// Two conditions are deliberately NOT errors: a fromlist entry that
// resolves to no loaded module, and a missing requester context. Both
// degrade silently inside the resolver so that the traced program's
// observable import behavior stays untouched.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ModuleNotFound indicates a requested module could not be located on any search path
	ModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	// ParseFailed indicates a module source file could not be parsed for import statements
	ParseFailed ErrorCode = "PARSE_FAILED"
	// FileTooLarge indicates a module source file exceeds the configured size cap
	FileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// OutputUnwritable indicates the rendered graph could not be written to its destination
	OutputUnwritable ErrorCode = "OUTPUT_UNWRITABLE"
	// RegexInvalid indicates the filename filter pattern did not compile
	RegexInvalid ErrorCode = "REGEX_INVALID"
	// FormatInvalid indicates an unsupported render format was requested
	FormatInvalid ErrorCode = "FORMAT_INVALID"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error represents a pygraph error with a stable code and an optional cause
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new coded error
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// CodeOf extracts the error code from err, or InternalError for uncoded errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var coded *Error
	if As(err, &coded) {
		return coded.Code
	}
	return InternalError
}
