package apperrors

import (
	"errors"
	"fmt"
)

// Error Codes
// These constants define the failure taxonomy surfaced to API callers

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeClaimConflict   = "CLAIM_CONFLICT"
	CodeInvalidTransit  = "INVALID_TRANSITION"
	CodeInactiveRequest = "INACTIVE_REQUEST"
	CodeForbidden       = "FORBIDDEN"
	CodeStoreDown       = "STORE_UNAVAILABLE"
)

// Error is a structured failure with a machine-readable code and a
// human-readable message. Handlers map codes to HTTP status.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a structured error with the given code
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a structured error wrapping an underlying cause
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func ClaimConflict(message string) *Error {
	return New(CodeClaimConflict, message)
}

func InvalidTransition(message string) *Error {
	return New(CodeInvalidTransit, message)
}

func InactiveRequest(message string) *Error {
	return New(CodeInactiveRequest, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func StoreUnavailable(err error) *Error {
	return Wrap(CodeStoreDown, "persistence layer unreachable", err)
}

// CodeOf extracts the taxonomy code from err, walking the wrap chain.
// Unrecognized errors report as store failures.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStoreDown
}

// Is reports whether err carries the given code anywhere in its chain
func Is(err error, code string) bool {
	return CodeOf(err) == code
}
