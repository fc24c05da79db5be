package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Icon pack errors
	ErrCodePackNotFound     ErrorCode = "PACK_NOT_FOUND"
	ErrCodeParseError       ErrorCode = "PARSE_ERROR"
	ErrCodeDrawableNotFound ErrorCode = "DRAWABLE_NOT_FOUND"

	// Configuration store errors
	ErrCodeImportValidation ErrorCode = "IMPORT_VALIDATION"
	ErrCodeStorePersist     ErrorCode = "STORE_PERSIST"

	// Configuration file errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// LauncherError represents a structured error with context
type LauncherError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LauncherError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LauncherError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LauncherError) WithDetail(key string, value interface{}) *LauncherError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LauncherError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LauncherError
func New(code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LauncherError
func Wrap(err error, code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific LauncherError code anywhere in its chain
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the outermost LauncherError code from an error chain
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	launcherErr, ok := err.(*LauncherError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return launcherErr.Code
}
