// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timeline-dev/timelines/db"
	"gorm.io/gorm"
)

// NewDB returns a migrated sqlite database living in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.ConnectDatabase(db.DriverSQLite, filepath.Join(t.TempDir(), "timelines.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close(conn) })

	require.NoError(t, db.MigrateDatabase(conn))

	return conn
}
