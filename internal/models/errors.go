package models

import (
	"errors"
	"fmt"
)

// Error codes used across the data core.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeCorruptData  = "CORRUPT_DATA"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the application error carrying a stable code, a
// caller-facing message and an optional wrapped cause.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewCorruptDataError marks a collection whose stored bytes failed to
// decode. The store recovers from it by re-seeding; it never escapes to
// callers.
func NewCorruptDataError(collection string, err error) *AppError {
	return &AppError{
		Code:    CodeCorruptData,
		Message: fmt.Sprintf("stored data for %q is corrupt", collection),
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal error", Err: err}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool { return hasCode(err, CodeUnauthorized) }

// IsCorruptData reports whether err marks undecodable stored bytes.
func IsCorruptData(err error) bool { return hasCode(err, CodeCorruptData) }
