package database_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, database.IsNoRows(sql.ErrNoRows))
	assert.True(t, database.IsNoRows(fmt.Errorf("scan: %w", sql.ErrNoRows)))
	assert.True(t, database.IsNoRows(database.ErrNoRows))
	assert.False(t, database.IsNoRows(nil))
	assert.False(t, database.IsNoRows(errors.New("boom")))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	assert.True(t, database.IsUniqueViolation(pgErr))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", pgErr)))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	err := errors.New("constraint failed: UNIQUE constraint failed: plan_records.owner, plan_records.plan_version (2067)")
	assert.True(t, database.IsUniqueViolation(err))
	assert.False(t, database.IsUniqueViolation(errors.New("no such table: plan_records")))
	assert.False(t, database.IsUniqueViolation(nil))
}
