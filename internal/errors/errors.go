// Package errors defines the storefront's typed application errors. Shop API
// failures are folded into these codes so handlers can pick a user-facing
// message without knowing about HTTP statuses.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict" // e.g. email already registered
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeUnauthorized ErrorCode = "unauthorized" // missing, expired or rejected token
	ErrCodeForbidden    ErrorCode = "forbidden"
	ErrCodeUpstream     ErrorCode = "upstream" // the Shop API failed or answered unexpectedly
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
)

// AppError is a categorized error. Message is what a visitor may see; it can
// be empty when only the cause is known. Field names the form input at fault.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	switch {
	case e.Message == "" && e.Cause != nil:
		return e.Cause.Error()
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return newError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return newError(ErrCodeConflict, message) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

// ValidationField creates a Validation error tied to one form field.
func ValidationField(field, message string) *AppError {
	e := newError(ErrCodeValidation, message)
	e.Field = field
	return e
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError { return newError(ErrCodeUnauthorized, message) }

// Forbidden creates a new Forbidden error.
func Forbidden(message string) *AppError { return newError(ErrCodeForbidden, message) }

// Wrap wraps err with a code and message. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// HasCode reports whether the outermost AppError in err's chain has code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool     { return HasCode(err, ErrCodeNotFound) }
func IsValidation(err error) bool   { return HasCode(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return HasCode(err, ErrCodeUnauthorized) }
func IsForbidden(err error) bool    { return HasCode(err, ErrCodeForbidden) }
func IsUpstream(err error) bool     { return HasCode(err, ErrCodeUpstream) }
func IsTimeout(err error) bool      { return HasCode(err, ErrCodeTimeout) }
func IsCanceled(err error) bool     { return HasCode(err, ErrCodeCanceled) }

// GetCode returns the code of the outermost AppError, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field of the outermost AppError, or "".
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetMessage returns the Message of the outermost AppError, or "".
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
