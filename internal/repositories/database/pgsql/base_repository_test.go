package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger_app/internal/apperrors"
)

func TestConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "transactions_reference_key"}, apperrors.ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "transactions_account_id_fkey"}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := constraintError(tt.err, "transaction OPE1")
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "transaction OPE1")
		})
	}

	t.Run("other errors are wrapped untouched", func(t *testing.T) {
		boom := errors.New("connection reset")
		err := constraintError(boom, "client a@b.c")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, "account 7")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "resource not found: account 7", err.Error())

	boom := errors.New("timeout")
	assert.ErrorIs(t, notFound(boom, "account 7"), boom)
	assert.NotErrorIs(t, notFound(boom, "account 7"), apperrors.ErrNotFound)
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-5))
	require.NotNil(t, limitArg(20))
	assert.Equal(t, 20, *limitArg(20))
	assert.Equal(t, 0, offsetArg(-3))
	assert.Equal(t, 40, offsetArg(40))
}
