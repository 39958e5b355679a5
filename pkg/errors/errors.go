package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the install engine's error taxonomy
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Tool settings
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Engine errors. Only DEPENDENCY (top-level) and SHELL_COMMAND abort a run.
	ErrDiscovery    ErrorCode = "DISCOVERY"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrDependency   ErrorCode = "DEPENDENCY"
	ErrPlacement    ErrorCode = "PLACEMENT"
	ErrShellCommand ErrorCode = "SHELL_COMMAND"
)

// PineError represents a structured error with code and details
type PineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PineError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PineError carrying the same code
func (e *PineError) Is(target error) bool {
	var targetErr *PineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PineError with the given code and message
func New(code ErrorCode, message string) *PineError {
	return &PineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PineError {
	return &PineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PineError
func Wrap(err error, code ErrorCode, message string) *PineError {
	if err == nil {
		return nil
	}
	return &PineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PineError {
	if err == nil {
		return nil
	}
	return &PineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PineError) WithDetail(key string, value interface{}) *PineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pineErr *PineError
	if errors.As(err, &pineErr) {
		return pineErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PineError
func GetErrorCode(err error) ErrorCode {
	var pineErr *PineError
	if errors.As(err, &pineErr) {
		return pineErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PineError
func GetErrorDetails(err error) map[string]interface{} {
	var pineErr *PineError
	if errors.As(err, &pineErr) {
		return pineErr.Details
	}
	return nil
}
