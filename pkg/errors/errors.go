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
	ErrConfigLoad           ErrorCode = "CONFIG_LOAD"
	ErrConfigParse          ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid        ErrorCode = "CONFIG_INVALID"
	ErrConfigPatternInvalid ErrorCode = "CONFIG_PATTERN_INVALID"

	// Vault errors
	ErrVaultNotFound ErrorCode = "VAULT_NOT_FOUND"
	ErrVaultScan     ErrorCode = "VAULT_SCAN"

	// Document errors
	ErrFileRead         ErrorCode = "FILE_READ"
	ErrFileWrite        ErrorCode = "FILE_WRITE"
	ErrFrontmatterParse ErrorCode = "FRONTMATTER_PARSE"

	// Match application errors
	ErrApplyConsistency ErrorCode = "APPLY_CONSISTENCY"
	ErrApplyBrackets    ErrorCode = "APPLY_BRACKETS"

	// Report errors
	ErrReportWrite ErrorCode = "REPORT_WRITE"
)

// LinkmendError represents a structured error with code and details
type LinkmendError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkmendError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkmendError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LinkmendError) Is(target error) bool {
	var targetErr *LinkmendError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LinkmendError with the given code and message
func New(code ErrorCode, message string) *LinkmendError {
	return &LinkmendError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkmendError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkmendError {
	return &LinkmendError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkmendError
func Wrap(err error, code ErrorCode, message string) *LinkmendError {
	if err == nil {
		return nil
	}
	return &LinkmendError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkmendError {
	if err == nil {
		return nil
	}
	return &LinkmendError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LinkmendError) WithDetail(key string, value interface{}) *LinkmendError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lmErr *LinkmendError
	if errors.As(err, &lmErr) {
		return lmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LinkmendError
func GetErrorCode(err error) ErrorCode {
	var lmErr *LinkmendError
	if errors.As(err, &lmErr) {
		return lmErr.Code
	}
	return ErrUnknown
}
