package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	pgpkg "github.com/dmitrymomot/authgate/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, pgpkg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pgpkg.IsNotFoundError(fmt.Errorf("query user: %w", pgx.ErrNoRows)))
	assert.False(t, pgpkg.IsNotFoundError(errors.New("other")))
	assert.False(t, pgpkg.IsNotFoundError(nil))
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.True(t, pgpkg.IsDuplicateKeyError(dup))
	assert.True(t, pgpkg.IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
	assert.False(t, pgpkg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pgpkg.IsDuplicateKeyError(nil))
}

func TestConstraintName(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_phone_number_key"}
	assert.Equal(t, "users_phone_number_key", pgpkg.ConstraintName(dup))
	assert.Equal(t, "users_phone_number_key", pgpkg.ConstraintName(fmt.Errorf("wrap: %w", dup)))
	assert.Equal(t, "", pgpkg.ConstraintName(errors.New("plain")))
}
