package apperrors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients.
// Every failure, whatever its internal shape, serializes to
// {"status":"error","message":...} with an optional field-error list.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
// Validation field errors are surfaced; all other details stay server-side.
func (e *AppError) ToResponse() ErrorResponse {
	resp := ErrorResponse{
		Status:  "error",
		Message: e.Message,
	}
	if e.Code == ErrCodeValidation {
		if fields, ok := e.Details["fields"]; ok {
			resp.Errors = fields
		}
	}
	return resp
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
