package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrSinkWrite         = errors.New("sink write failed")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrStore             = errors.New("store error")
	ErrValidation        = errors.New("validation failed")
)

// Error codes carried by AppError.
const (
	CodeSource = "SOURCE_UNAVAILABLE"
	CodeSink   = "SINK_ERROR"
	CodeConfig = "CONFIG_ERROR"
	CodeStore  = "STORE_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// SourceUnavailable reports a missing or unreadable input document.
func SourceUnavailable(path string, cause error) error {
	if cause == nil {
		cause = ErrSourceUnavailable
	} else if !errors.Is(cause, ErrSourceUnavailable) {
		cause = fmt.Errorf("%w: %w", ErrSourceUnavailable, cause)
	}
	return NewAppError(CodeSource, path, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsSourceUnavailable reports whether err means the input could not be read.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrUnsupportedFormat)
}
