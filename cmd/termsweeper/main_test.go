package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/termsweeper/internal/mines"
	"github.com/vancomm/termsweeper/internal/records"
)

// isolate points the log file and records database into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TERMSWEEPER_LOG_FILE", filepath.Join(dir, "termsweeper.log"))
	t.Setenv("TERMSWEEPER_RECORDS_DRIVER", "sqlite3")
	t.Setenv("TERMSWEEPER_RECORDS_DSN", filepath.Join(dir, "termsweeper.db"))
	return dir
}

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigLayers(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "termsweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  rows: 16\n  cols: 16\n  mines: 40\nseed: 9\n"), 0o600))
	t.Setenv("TERMSWEEPER_MINES", "30")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--cols", "20", "--no-records"}))
	opts := options{configPath: path, cols: 20, noRecords: true}
	cfg, err := opts.config(cmd)
	require.NoError(t, err)

	// file, then env, then flags
	assert.Equal(t, mines.Params{Rows: 16, Cols: 20, MineCount: 30}, cfg.Params())
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.False(t, cfg.Records.Enabled)
}

func TestPlayWinSavesRecord(t *testing.T) {
	dir := isolate(t)

	// with three mines on a 3x4 board the zone around 2 2 leaves room for
	// mines only in the last column, so clearing it wins at once
	out, err := run(t, "2 2\n", "--rows", "3", "--cols", "4", "--mines", "3", "--seed", "11", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "YOU WON! Congratulations")
	assert.Contains(t, out, "Time: ")
	assert.Contains(t, out, "New best time for 3x4 with 3 mines!")

	store, err := records.OpenSQLite(filepath.Join(dir, "termsweeper.db"))
	require.NoError(t, err)
	defer store.Close()
	best, err := store.Best(context.Background(), records.Filter{})
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, uint64(11), best[0].Seed)
	assert.Equal(t, 1, best[0].Moves)

	log, err := os.ReadFile(filepath.Join(dir, "termsweeper.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "record saved")

	out, err = run(t, "", "records", "--rows", "3", "--cols", "4", "--mines", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "3x4")
	assert.Contains(t, out, "Moves")
}

func TestPlayQuitSavesNothing(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "q\n", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Game exited.")

	store, err := records.OpenSQLite(filepath.Join(dir, "termsweeper.db"))
	require.NoError(t, err)
	defer store.Close()
	best, err := store.Best(context.Background(), records.Filter{})
	require.NoError(t, err)
	assert.Empty(t, best)
}

func TestPlayBadBoard(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "--rows", "3", "--cols", "3", "--mines", "1")
	var ce *mines.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestRecordsEmpty(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "records", "--all-sizes")
	require.NoError(t, err)
	assert.Contains(t, out, "No wins recorded yet.")
}

func TestRecordsTable(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := recordsTable([]records.Record{
		{Rows: 9, Cols: 9, Mines: 8, Won: true, Moves: 31, StartedAt: start, EndedAt: start.Add(42 * time.Second)},
		{Rows: 16, Cols: 30, Mines: 99, Won: true, Moves: 210, StartedAt: start, EndedAt: start.Add(3 * time.Minute)},
	})
	assert.Contains(t, out, "9x9")
	assert.Contains(t, out, "16x30")
	assert.Contains(t, out, "42s")
	assert.Contains(t, out, "3m0s")
	assert.Contains(t, out, "210")
}

func TestMigrateCmd(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	assert.Equal(t, "records schema at version 1 (dirty: false)\n", out)
}
