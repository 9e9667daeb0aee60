// Package dberrs maps storage errors onto the errs taxonomy shared by the
// repositories.
package dberrs

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a duplicate key error. Errors
// translated by GORM (TranslateError) and raw pgconn errors are both
// recognised.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// TranslateInsert turns a duplicate key error into errs.AlreadyExistsError.
func TranslateInsert(entity string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewAlreadyExistsError(entity, err)
	}
	return err
}

// TranslateRead turns gorm.ErrRecordNotFound into errs.ObjectNotFoundError.
func TranslateRead(entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}
	return err
}
