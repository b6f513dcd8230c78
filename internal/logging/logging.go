// Package logging builds the application logger. The terminal belongs to
// the game, so entries only go to a rotating file.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/termsweeper/internal/config"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

func New(cfg config.Log, development bool) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if development {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetOutput(io.Discard)
	if cfg.File == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.File,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Level:      level,
		Formatter:  &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}
