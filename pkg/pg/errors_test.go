package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventqueue/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsNotFoundError(nil))
	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("select: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}

func TestIsCheckViolationError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsCheckViolationError(nil))
	assert.True(t, pg.IsCheckViolationError(fmt.Errorf("insert event: %w", &pgconn.PgError{Code: "23514"})))
	assert.False(t, pg.IsCheckViolationError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsCheckViolationError(errors.New("check")))
}

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsConnectionError(nil))
	assert.True(t, pg.IsConnectionError(&pgconn.PgError{Code: "08006"}))
	assert.False(t, pg.IsConnectionError(&pgconn.PgError{Code: "23514"}))
	assert.False(t, pg.IsConnectionError(errors.New("timeout")))
}
