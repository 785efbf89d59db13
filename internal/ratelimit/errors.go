// Package ratelimit defines sentinel errors.
package ratelimit

import "errors"

// ErrorCode represents a typed error code.
type ErrorCode string

const (
	CodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	CodeInvalidArgument      ErrorCode = "INVALID_ARGUMENT"
)

// AppError is a typed application error.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Wrap creates a new AppError.
func Wrap(code ErrorCode, msg string, err error) error {
	return &AppError{Code: code, Message: msg, Err: err}
}

// CodeOf returns the ErrorCode for an error.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ErrInvalidArgument indicates malformed runtime input.
var ErrInvalidArgument = &AppError{Code: CodeInvalidArgument, Message: "invalid argument"}
