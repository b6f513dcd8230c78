package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSQLite(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer db.Close()

	migrator, err := MigrateSQLite(db)
	require.NoError(t, err)

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// a second run finds nothing to do
	_, err = MigrateSQLite(db)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM record`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenSQLiteBadPath(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing", "records.db"))
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	version, dirty, err := Migrate("sqlite3", path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	version, _, err = Migrate("sqlite", path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	_, _, err = Migrate("oracle", path)
	assert.ErrorIs(t, err, ErrUnknownDriver)
	assert.ErrorContains(t, err, `unknown records driver "oracle"`)
}

func TestMigratePostgresUnreachable(t *testing.T) {
	migrator, err := MigratePostgres("postgres://sweeper@127.0.0.1:1/records?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
	assert.Nil(t, migrator)
}
