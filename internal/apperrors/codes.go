package apperrors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Client input errors
const (
	// ErrCodeValidation indicates the request payload failed schema validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeConflict indicates a uniqueness constraint violation.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthenticated indicates the request carried no access token.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// ErrCodeInvalidToken indicates a malformed, tampered or expired token.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeInvalidCredentials indicates a failed login attempt.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeForbidden indicates the caller is authenticated but not the owner.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabase indicates a store or transport failure.
	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
)
