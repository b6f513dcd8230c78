package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/vancomm/termsweeper/internal/mines"
)

type Board struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Records struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
}

type Config struct {
	Board       Board   `yaml:"board"`
	Seed        uint64  `yaml:"seed"` /* 0 picks one from the clock */
	Log         Log     `yaml:"log"`
	Records     Records `yaml:"records"`
	Development bool    `yaml:"development"`
}

// Default is the beginner board of the classic game.
func Default() Config {
	return Config{
		Board: Board{Rows: 9, Cols: 9, Mines: 8},
		Log:   Log{File: "termsweeper.log", Level: "info"},
		Records: Records{
			Enabled: true,
			Driver:  "sqlite3",
			DSN:     "termsweeper.db",
		},
	}
}

// Load reads a YAML file over [Default]. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func lookupInt(name string, dst *int) error {
	s, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", name, err)
	}
	*dst = n
	return nil
}

func lookupString(name string, dst *string) bool {
	s, ok := os.LookupEnv(name)
	if ok {
		*dst = s
	}
	return ok
}

// Postgres reports whether Driver names the postgres store.
func (r Records) Postgres() bool {
	return r.Driver == "postgres" || r.Driver == "postgresql"
}

// ApplyEnv overrides c with any TERMSWEEPER_* variables that are set.
func (c *Config) ApplyEnv() error {
	for name, dst := range map[string]*int{
		"TERMSWEEPER_ROWS":  &c.Board.Rows,
		"TERMSWEEPER_COLS":  &c.Board.Cols,
		"TERMSWEEPER_MINES": &c.Board.Mines,
	} {
		if err := lookupInt(name, dst); err != nil {
			return err
		}
	}

	if s, ok := os.LookupEnv("TERMSWEEPER_SEED"); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to convert TERMSWEEPER_SEED to uint64: %w", err)
		}
		c.Seed = seed
	}

	lookupString("TERMSWEEPER_LOG_FILE", &c.Log.File)
	lookupString("TERMSWEEPER_LOG_LEVEL", &c.Log.Level)
	lookupString("TERMSWEEPER_RECORDS_DRIVER", &c.Records.Driver)

	if s, ok := os.LookupEnv("TERMSWEEPER_RECORDS"); ok {
		c.Records.Enabled = s != "0"
	}
	if s, ok := os.LookupEnv("DEVELOPMENT"); ok {
		c.Development = s != "0"
	}

	dsnSet := lookupString("TERMSWEEPER_RECORDS_DSN", &c.Records.DSN)
	// the sqlite default is no DSN for postgres
	if c.Records.Postgres() && !dsnSet &&
		(c.Records.DSN == "" || c.Records.DSN == Default().Records.DSN) {
		if url, err := PostgresURL(); err == nil {
			c.Records.DSN = url
		}
	}
	return nil
}

func (c Config) Params() mines.Params {
	return mines.Params{
		Rows:      c.Board.Rows,
		Cols:      c.Board.Cols,
		MineCount: c.Board.Mines,
	}
}

// RandSeed returns the configured seed, or one taken from now when none is
// set.
func (c Config) RandSeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(now.UnixNano())
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"rows":           c.Board.Rows,
		"cols":           c.Board.Cols,
		"mines":          c.Board.Mines,
		"seed":           c.Seed,
		"log_file":       c.Log.File,
		"log_level":      c.Log.Level,
		"records":        c.Records.Enabled,
		"records_driver": c.Records.Driver,
		"development":    c.Development,
	}
}
