package pgerr_test

import (
	"errors"
	"testing"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, pgerr.Translate(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, pgerr.Translate(plain))

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "cartons_code_key"}
	err := pgerr.Translate(unique)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	var dup *errs.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "cartons_code_key", dup.Constraint)

	fk := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, pgerr.Translate(fk), errs.ErrDuplicateKey)
}

func TestNotFound(t *testing.T) {
	err := pgerr.NotFound(gorm.ErrRecordNotFound, "lot", "42")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	other := errors.New("boom")
	assert.Same(t, other, pgerr.NotFound(other, "lot", "42"))
}
