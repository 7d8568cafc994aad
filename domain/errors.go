package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
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
	ErrKeyNotFound        = NewError(ErrCodeNotFound, "key not found")
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrGroupNotFound      = NewError(ErrCodeNotFound, "group not found")
	ErrParticipantMissing = NewError(ErrCodeNotFound, "participant not found")
	ErrGroupKeyRequired   = NewError(ErrCodeInvalid, "group key must not be empty")
	ErrGroupKeyMismatch   = NewError(ErrCodeForbidden, "wrong key for this group")
	ErrTitleRequired      = NewError(ErrCodeInvalid, "title is required")
	ErrNameRequired       = NewError(ErrCodeInvalid, "name is required")
	ErrBadCredentials     = NewError(ErrCodeUnauthorized, "invalid credentials")
	ErrNoSession          = NewError(ErrCodeUnauthorized, "no active session")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrEmailRequired      = NewError(ErrCodeInvalid, "email is required")
	ErrPasswordRequired   = NewError(ErrCodeInvalid, "password is required")
	ErrEmailTaken         = NewError(ErrCodeConflict, "email already registered")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
