package postgres

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"gorm.io/gorm"
)

// SQLSTATE codes and SQLite messages are checked as a fallback for drivers
// that do not translate errors.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "sqlstate 23505") ||
		strings.Contains(errMsg, "unique constraint failed")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "sqlstate 23503") ||
		strings.Contains(errMsg, "foreign key constraint failed")
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "sqlstate 23514") ||
		strings.Contains(errMsg, "check constraint failed")
}

// translateWriteError maps constraint violations to IntegrityViolation and
// everything else to a database execution error.
func translateWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) || isForeignKeyConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.ErrIntegrityViolation.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// translateReadError maps a missing row to notFound.
func translateReadError(err error, notFound *domainerrors.BaseError, details string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound.WrapMessage(details)
	}

	return errors.Wrap(err, details)
}
