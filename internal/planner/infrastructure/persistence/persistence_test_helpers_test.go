package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/studyflow/internal/shared/infrastructure/database/sqlite"
)

// newTestConnection opens a fresh file-backed SQLite database under a
// per-test temp directory, the same in-memory-equivalent setup used
// throughout the shared database package's own connection tests.
func newTestConnection(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()

	tmpDir, err := os.MkdirTemp("", "studyflow-planner-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(tmpDir, "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}
