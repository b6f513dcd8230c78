package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/termsweeper/internal/mines"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termsweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, mines.Params{Rows: 9, Cols: 9, MineCount: 8}, cfg.Params())
	assert.NoError(t, cfg.Params().Validate())
	assert.Equal(t, "sqlite3", cfg.Records.Driver)
	assert.True(t, cfg.Records.Enabled)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
board:
  rows: 16
  cols: 30
  mines: 99
seed: 42
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, mines.Params{Rows: 16, Cols: 30, MineCount: 99}, cfg.Params())
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "termsweeper.log", cfg.Log.File)
	assert.Equal(t, "termsweeper.db", cfg.Records.DSN)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "board:\n  width: 3\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "board: [1, 2]\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TERMSWEEPER_ROWS", "5")
	t.Setenv("TERMSWEEPER_COLS", "6")
	t.Setenv("TERMSWEEPER_MINES", "7")
	t.Setenv("TERMSWEEPER_SEED", "18446744073709551615")
	t.Setenv("TERMSWEEPER_LOG_LEVEL", "warn")
	t.Setenv("TERMSWEEPER_RECORDS", "0")
	t.Setenv("DEVELOPMENT", "1")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, mines.Params{Rows: 5, Cols: 6, MineCount: 7}, cfg.Params())
	assert.Equal(t, uint64(18446744073709551615), cfg.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Records.Enabled)
	assert.True(t, cfg.Development)
}

func TestApplyEnvErrors(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		t.Setenv("TERMSWEEPER_ROWS", "many")
		cfg := Default()
		assert.ErrorContains(t, cfg.ApplyEnv(), "TERMSWEEPER_ROWS")
	})
	t.Run("seed", func(t *testing.T) {
		t.Setenv("TERMSWEEPER_SEED", "-1")
		cfg := Default()
		assert.ErrorContains(t, cfg.ApplyEnv(), "TERMSWEEPER_SEED")
	})
}

func TestApplyEnvPostgres(t *testing.T) {
	t.Setenv("TERMSWEEPER_RECORDS_DRIVER", "postgres")
	t.Setenv("POSTGRES_USER", "sweeper")
	t.Setenv("POSTGRES_PASSWORD", "p@ss")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "records")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.True(t, cfg.Records.Postgres())
	assert.Equal(t, "postgres://sweeper:p%40ss@db:5432/records?sslmode=disable", cfg.Records.DSN)

	t.Setenv("DATABASE_URL", "postgres://other/records")
	cfg = Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "postgres://other/records", cfg.Records.DSN)
}

func TestApplyEnvPostgresAlias(t *testing.T) {
	t.Setenv("TERMSWEEPER_RECORDS_DRIVER", "postgresql")
	t.Setenv("DATABASE_URL", "postgres://env/records")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.True(t, cfg.Records.Postgres())
	assert.Equal(t, "postgres://env/records", cfg.Records.DSN)
}

func TestApplyEnvPostgresKeepsExplicitDSN(t *testing.T) {
	t.Setenv("TERMSWEEPER_RECORDS_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://env/records")

	t.Run("env", func(t *testing.T) {
		t.Setenv("TERMSWEEPER_RECORDS_DSN", "postgres://explicit/records")
		cfg := Default()
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, "postgres://explicit/records", cfg.Records.DSN)
	})
	t.Run("file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "records:\n  dsn: postgres://file/records\n"))
		require.NoError(t, err)
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, "postgres://file/records", cfg.Records.DSN)
	})
}

func TestRandSeed(t *testing.T) {
	now := time.Unix(0, 12345)

	cfg := Default()
	assert.Equal(t, uint64(12345), cfg.RandSeed(now))

	cfg.Seed = 7
	assert.Equal(t, uint64(7), cfg.RandSeed(now))
}
