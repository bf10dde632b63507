// Package pgerr maps PostgreSQL and GORM errors onto the errs package so that
// repositories report the same error values as every other adapter.
package pgerr

import (
	"context"
	"errors"

	"wms/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// Translate turns a unique violation into errs.DuplicateKeyError carrying the
// constraint name. Other errors are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewDuplicateKeyError(pgErr.ConstraintName, err)
	}
	return err
}

// NotFound turns gorm.ErrRecordNotFound into errs.ObjectNotFoundError.
func NotFound(err error, paramName string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return err
}

// Savepoint runs fn in a nested transaction. Inside an open transaction GORM
// issues SAVEPOINT / ROLLBACK TO, so a rejected insert leaves the outer
// transaction usable and the caller may retry with another value.
func Savepoint(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return Translate(db.WithContext(ctx).Transaction(fn))
}
