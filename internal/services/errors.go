package services

import (
	"errors"

	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
)

// appError passes application errors through and classifies everything else.
// message is what the client sees for internal failures.
func appError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if database.IsUniqueViolation(err) {
		return apperr.Wrap(apperr.KindConflict, "A record with the same unique value already exists", err)
	}
	if database.IsForeignKeyViolation(err) {
		return apperr.Wrap(apperr.KindConflict, "The record is referenced by other records", err)
	}
	return apperr.Internal(message, err)
}
