package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeInvalid              ErrorCode = "INVALID"
	ErrCodeStore                ErrorCode = "STORE"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"
	ErrCodeConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrCodeInternal             ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrTextRequired       = NewError(ErrCodeInvalid, "task text is required")
	ErrDeadlineRequired   = NewError(ErrCodeInvalid, "deadline is required")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrSelectionDisabled  = NewError(ErrCodeForbidden, "task selection is disabled")
	ErrConfirmationNeeded = NewError(ErrCodeConfirmationRequired, "confirmation required")
)

// StoreError classifies a failure reported by the task store.
func StoreError(op string, err error) *Error {
	return WrapError(ErrCodeStore, "store "+op+" failed", err)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
