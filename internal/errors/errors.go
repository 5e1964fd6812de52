package errors

import (
	"errors"
	"fmt"
)

// AppError is a structured application error with a stable code that
// the HTTP layer maps onto status codes.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving an existing
// code where there is one.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var appErr *AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode attaches a code to an existing error.
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// GetCode returns the error code, or CodeInternal for plain errors.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether the error carries the given code.
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Error codes used across the service.
const (
	CodeInternal       = "INTERNAL_ERROR"
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeDecodeFailed   = "DECODE_FAILED"
	CodeBatchNotFound  = "BATCH_NOT_FOUND"
	CodeSubmitInFlight = "SUBMIT_IN_FLIGHT"
	CodeSubmitFailed   = "SUBMIT_FAILED"
	CodeReferenceData  = "REFERENCE_DATA_ERROR"
	CodeInvalidInput   = "INVALID_INPUT"
)

// ConfigInvalid reports a bad or missing configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DecodeFailed reports a file that could not be read as a spreadsheet.
func DecodeFailed(cause error) *AppError {
	return &AppError{Code: CodeDecodeFailed, Message: "file could not be read as a spreadsheet", Cause: cause}
}

// InvalidInput reports a malformed request.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
