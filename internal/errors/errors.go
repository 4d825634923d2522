package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"bootcompare/domain/core"
)

// AppError represents a structured application error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping its code.
// Domain errors are classified on the way in.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError, or classifies domain
// errors; anything else is INTERNAL_ERROR
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case err == nil:
		return ""
	case core.IsInvalidInputError(err):
		return CodeInvalidInput
	case core.IsDegenerateVarianceError(err):
		return CodeDegenerateVariance
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return CodeCancelled
	default:
		return CodeInternalError
	}
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDegenerateVariance = "DEGENERATE_VARIANCE"
	CodeCancelled          = "CANCELLED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ExitCode maps an error to a process exit status for the CLI
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		return 0
	case CodeInvalidInput, CodeConfigInvalid:
		return 2
	case CodeDegenerateVariance:
		return 3
	default:
		return 1
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
