// Package errors provides structured, user-facing error types for the
// zenreport tool.
//
// Errors carry a category, a machine-readable code, an optional suggestion
// for the user and arbitrary context values. Categories map to process exit
// codes so the CLI can signal the failure class to calling scripts.
//
// The metrics engine itself is total and never produces errors; this
// taxonomy covers the boundaries around it: file access, input decoding,
// flag validation and configuration.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents a broad class of failure.
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryDecode        ErrorCategory = "decode"
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode identifies a specific failure within a category.
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileUnreadable ErrorCode = "file_unreadable"

	// Decode errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeEmptyInput    ErrorCode = "empty_input"

	// Validation errors
	CodeInvalidDate      ErrorCode = "invalid_date"
	CodeInvalidTimezone  ErrorCode = "invalid_timezone"
	CodeInvalidComponent ErrorCode = "invalid_component"
	CodeMissingField     ErrorCode = "missing_field"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ZenError is the base error type for all application errors.
type ZenError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error.
type Context map[string]interface{}

// Error implements the error interface.
func (e *ZenError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *ZenError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate process exit code for the error.
func (e *ZenError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryDecode, CategoryValidation:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds a context value to the error.
func (e *ZenError) WithContext(key string, value interface{}) *ZenError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error.
func (e *ZenError) WithSuggestion(suggestion string) *ZenError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ZenError.
func New(category ErrorCategory, code ErrorCode, message string) *ZenError {
	return &ZenError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ZenError context.
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ZenError {
	if err == nil {
		return nil
	}

	return &ZenError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FileError creates a file-related error.
func FileError(code ErrorCode, path string, err error) *ZenError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	default:
		message = fmt.Sprintf("unable to read file: %s", path)
		suggestion = "verify the file is a readable text export"
	}

	var result *ZenError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// DecodeError creates an input-decoding error.
func DecodeError(code ErrorCode, path string, err error) *ZenError {
	var message string
	var suggestion string

	switch code {
	case CodeEmptyInput:
		message = fmt.Sprintf("file %s contains no data rows", path)
		suggestion = "ensure the file has a header line followed by data rows"
	default:
		message = fmt.Sprintf("unable to decode file %s", path)
		suggestion = "export the report as tab- or comma-separated text and retry"
	}

	var result *ZenError
	if err != nil {
		result = Wrap(err, CategoryDecode, code, message)
	} else {
		result = New(CategoryDecode, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ValidationError creates a validation-related error.
func ValidationError(code ErrorCode, field string, value interface{}, err error) *ZenError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in '%s': %v", field, value)
		suggestion = "use date format YYYY-MM-DD"
	case CodeInvalidTimezone:
		message = fmt.Sprintf("invalid timezone in '%s': %v", field, value)
		suggestion = "supported timezones are GMT+0 and GMT+6"
	case CodeInvalidComponent:
		message = fmt.Sprintf("invalid fee component in '%s': %v", field, value)
		suggestion = "valid components: transaction_fee, interchange_fee, card_scheme_fee"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this required field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value and format"
	}

	var result *ZenError
	if err != nil {
		result = Wrap(err, CategoryValidation, code, message)
	} else {
		result = New(CategoryValidation, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error.
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *ZenError {
	var message string
	var suggestion string

	switch code {
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this setting as a flag or in the config file"
	default:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "run 'zenreport analyze --help' for valid values"
	}

	var result *ZenError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, code, message)
	} else {
		result = New(CategoryConfiguration, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error.
func InternalError(code ErrorCode, operation string, err error) *ZenError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *ZenError
	if err != nil {
		result = Wrap(err, CategoryInternal, code, message)
	} else {
		result = New(CategoryInternal, code, message)
	}

	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// IsZenError checks if an error is a ZenError.
func IsZenError(err error) bool {
	_, ok := err.(*ZenError)
	return ok
}

// AsZenError extracts a ZenError from an error chain.
func AsZenError(err error) (*ZenError, bool) {
	var zenErr *ZenError
	if errors.As(err, &zenErr) {
		return zenErr, true
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already a ZenError.
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *ZenError {
	if err == nil {
		return nil
	}

	if zenErr, ok := AsZenError(err); ok {
		return zenErr
	}

	return Wrap(err, category, code, message)
}
