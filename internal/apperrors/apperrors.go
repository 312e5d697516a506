// Package apperrors provides unified error handling for the API.
// It implements a structured error type with machine-readable codes and
// HTTP status mapping so handlers can translate any failure into a
// consistent client response.
package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message safe to show clients.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Never serialized to clients.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Constructors, one per taxonomy entry ---

// Validation creates an AppError for invalid client input. The field-level
// violations are attached under the "fields" detail key.
func Validation(message string, fields any) *AppError {
	e := &AppError{
		Code: ErrCodeValidation, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
	if fields != nil {
		e.Details = map[string]any{"fields": fields}
	}
	return e
}

// Conflict creates an AppError for a uniqueness violation on the named field.
func Conflict(field string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: fmt.Sprintf("%s already in use", field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"field": field},
	}
}

// AlreadyExists creates an AppError for a duplicate resource when the
// colliding field is not known (e.g. a storage-level constraint violation).
func AlreadyExists(resource string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: fmt.Sprintf("A %s with these details already exists", resource),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"resource": resource},
	}
}

// Unauthenticated creates an AppError for a request with no access token.
func Unauthenticated(reason string) *AppError {
	if reason == "" {
		reason = "Access token is missing"
	}
	return &AppError{
		Code: ErrCodeUnauthenticated, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates an AppError for a malformed, tampered or expired
// token. Verification failures deliberately collapse to this single kind.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid or expired access token",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidCredentials creates an AppError for a failed login. The message is
// identical whether the email was unknown or the password wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates an AppError for an authenticated caller that is not the
// owner of the targeted resource.
func Forbidden() *AppError {
	return &AppError{
		Code: ErrCodeForbidden, Message: "You don't have permission to perform this action",
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates an AppError for an absent resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Internal creates an AppError for an unexpected failure. The cause is kept
// for logging but never reaches the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Database creates an AppError for a store/transport failure.
func Database(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabase, Message: "A database error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
