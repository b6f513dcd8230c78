// Package database opens the records databases and keeps their schema up
// to date with the embedded migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrations embed.FS

var ErrUnknownDriver = errors.New("unknown records driver")

func up(migrator *migrate.Migrate) error {
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func ConnectPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

func MigratePostgres(url string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations/postgres")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := up(migrator); err != nil {
		migrator.Close()
		return nil, err
	}
	return migrator, nil
}

func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sql.Open does not touch the file
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// MigrateSQLite migrates db in place. The returned migrator shares db, so
// closing it closes db too.
func MigrateSQLite(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations/sqlite3")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("unable to create sqlite3 migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := up(migrator); err != nil {
		return nil, err
	}
	return migrator, nil
}

// Migrate brings the records database for driver up to date and reports
// the resulting schema version.
func Migrate(driver, dsn string) (version uint, dirty bool, err error) {
	var migrator *migrate.Migrate
	switch driver {
	case "sqlite3", "sqlite":
		db, err := OpenSQLite(dsn)
		if err != nil {
			return 0, false, err
		}
		defer db.Close()
		if migrator, err = MigrateSQLite(db); err != nil {
			return 0, false, err
		}
	case "postgres", "postgresql":
		if migrator, err = MigratePostgres(dsn); err != nil {
			return 0, false, err
		}
		defer migrator.Close()
	default:
		return 0, false, fmt.Errorf("%w %q", ErrUnknownDriver, driver)
	}
	return migrator.Version()
}
