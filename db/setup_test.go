package db

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeline-dev/timelines/internal/models"
	"gorm.io/gorm"
)

func TestConnectDatabase_UnknownDriver(t *testing.T) {
	_, err := ConnectDatabase("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestMigrateDatabase_CreatesTables(t *testing.T) {
	conn, err := ConnectDatabase(DriverSQLite, filepath.Join(t.TempDir(), "setup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	require.NoError(t, MigrateDatabase(conn))

	migrator := conn.Migrator()
	for _, model := range []any{
		&models.User{},
		&models.Password{},
		&models.Timeline{},
		&models.Location{},
		&models.Person{},
		&models.Event{},
	} {
		assert.True(t, migrator.HasTable(model), "%T table missing", model)
	}

	// second run is a no-op
	require.NoError(t, MigrateDatabase(conn))
}

func TestPing(t *testing.T) {
	conn, err := ConnectDatabase(DriverSQLite, filepath.Join(t.TempDir(), "ping.db"))
	require.NoError(t, err)

	assert.NoError(t, Ping(context.Background(), conn))

	require.NoError(t, Close(conn))
	assert.Error(t, Ping(context.Background(), conn))
}

func TestLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)

	query := func() (string, int64) { return "SELECT * FROM users", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), query, errors.New("no such table: users"))
	assert.Contains(t, buf.String(), "no such table: users")
}
