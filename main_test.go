package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/models"
	"fittrack/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fittrack.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", path)
	t.Setenv("LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "migrate", "seed"} {
		assert.Contains(t, out, sub)
	}
}

func TestMigrateCommand_Idempotent(t *testing.T) {
	useTempDB(t)
	for i := 0; i < 2; i++ {
		out, err := run(t, "migrate")
		require.NoError(t, err, "run %d", i+1)
		assert.Contains(t, out, "Database schema is up to date")
	}
}

func TestSeedCommand(t *testing.T) {
	path := useTempDB(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog seeded")
	assert.NotContains(t, out, "Demo user")

	out, err = run(t, "seed", "--demo-user", "--password", "s3cret!", "--days", "2", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "0 exercises, 0 foods added")
	assert.Contains(t, out, "password: s3cret!")

	cfg := &config.Config{DBDriver: "sqlite", DatabaseDSN: path, DBMaxOpenConns: 1}
	db, err := database.Open(cfg, observability.Discard())
	require.NoError(t, err)
	defer database.Close(db)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := run(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}
