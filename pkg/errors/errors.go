package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Rule errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrPatternTimeout ErrorCode = "PATTERN_TIMEOUT"

	// Host capability errors
	ErrOpen   ErrorCode = "OPEN"
	ErrPrompt ErrorCode = "PROMPT"
	ErrWatch  ErrorCode = "WATCH"
)

// TermlinksError represents a structured error with code and details
type TermlinksError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TermlinksError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TermlinksError) Unwrap() error {
	return e.Wrapped
}

// Is matches any TermlinksError carrying the same code
func (e *TermlinksError) Is(target error) bool {
	var targetErr *TermlinksError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TermlinksError with the given code and message
func New(code ErrorCode, message string) *TermlinksError {
	return &TermlinksError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TermlinksError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TermlinksError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *TermlinksError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TermlinksError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *TermlinksError) WithDetail(key string, value interface{}) *TermlinksError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tlErr *TermlinksError
	if errors.As(err, &tlErr) {
		return tlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TermlinksError
func GetErrorCode(err error) ErrorCode {
	var tlErr *TermlinksError
	if errors.As(err, &tlErr) {
		return tlErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TermlinksError
func GetErrorDetails(err error) map[string]interface{} {
	var tlErr *TermlinksError
	if errors.As(err, &tlErr) {
		return tlErr.Details
	}
	return nil
}
