package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/termsweeper/internal/config"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termsweeper.log")
	log, err := New(config.Log{File: path, Level: "info"}, false)
	require.NoError(t, err)

	log.WithField("moves", 3).Info("game over")
	log.Debug("hidden")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `msg="game over"`)
	assert.Contains(t, string(b), "moves=3")
	assert.NotContains(t, string(b), "hidden")
}

func TestNewDevelopment(t *testing.T) {
	log, err := New(config.Log{Level: "error"}, true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"}, false)
	assert.Error(t, err)
}
