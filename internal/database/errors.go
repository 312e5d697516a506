package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skillsenselab/recipebook/internal/apperrors"
)

// IsNotFound checks if the error is a GORM record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate checks if the error is a unique-constraint violation.
// TranslateError normalizes the driver-specific error to gorm.ErrDuplicatedKey.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// FromDatabase converts a store error to an AppError. Raw driver detail is
// retained as the cause for logging and never reaches the client.
//
// A duplicate key maps to CONFLICT: two concurrent registrations may both
// pass the application-level uniqueness pre-check, and the loser of the race
// must see the same outcome as a plain collision.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.AlreadyExists(resource).WithCause(err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Internal(err)
	}

	return apperrors.Database(err)
}
