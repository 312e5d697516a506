// Package validation provides request payload validation. Declarative rules
// are expressed as struct tags checked by go-playground/validator; rules the
// tag language cannot express (password character classes, cross-field
// checks) use the fluent Validator. Either path collects every violation
// into one structured field-error list.
package validation

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/recipebook/internal/apperrors"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// ContainsAny checks that a string contains at least one rune from set.
func (v *Validator) ContainsAny(field, value, set, what string) *Validator {
	if !strings.ContainsAny(value, set) {
		v.AddError(field, fmt.Sprintf("must contain at least one %s", what))
	}
	return v
}

// AsError returns a VALIDATION_ERROR AppError carrying every collected field
// error, or nil when the payload is valid.
func AsError(fieldErrors []FieldError) *apperrors.AppError {
	if len(fieldErrors) == 0 {
		return nil
	}
	messages := make([]string, len(fieldErrors))
	for i, e := range fieldErrors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return apperrors.Validation(strings.Join(messages, "; "), fieldErrors)
}
