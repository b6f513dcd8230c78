// Package records keeps the results of finished games and answers
// best-time queries.
package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/termsweeper/internal/database"
	"github.com/vancomm/termsweeper/internal/mines"
)

type Record struct {
	ID                uuid.UUID
	Rows, Cols, Mines int
	Won               bool
	Moves             int
	Seed              uint64
	StartedAt         time.Time
	EndedAt           time.Time
}

func (r Record) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

func (r Record) Params() mines.Params {
	return mines.Params{Rows: r.Rows, Cols: r.Cols, MineCount: r.Mines}
}

var ErrInvalidRecord = errors.New("invalid record")

func (r *Record) prepare() error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.StartedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return fmt.Errorf("%w: game %s ends before it starts", ErrInvalidRecord, r.ID)
	}
	return nil
}

// Filter narrows [Store.Best]. A nil Params matches every board size and a
// zero Limit returns every winning record.
type Filter struct {
	Params *mines.Params
	Limit  int
}

// WhereClause returns conditions on top of "won" using named parameters,
// which both drivers accept.
func (f Filter) WhereClause() (string, map[string]any) {
	clauses := make([]string, 0)
	args := map[string]any{}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mine_count",
		)
		args["width"] = f.Params.Cols
		args["height"] = f.Params.Rows
		args["mine_count"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (f Filter) query(columns string) (string, map[string]any) {
	query := "SELECT " + columns + " FROM record WHERE won"
	whereClause, args := f.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}
	query += " ORDER BY duration_ms, ended_at"
	if f.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = f.Limit
	}
	return query, args
}

type Store interface {
	// Save stores a finished game, won or lost. A nil ID is replaced with
	// a fresh one.
	Save(ctx context.Context, r Record) error
	// Best lists won games, fastest first.
	Best(ctx context.Context, f Filter) ([]Record, error)
	Close() error
}

var ErrUnknownDriver = database.ErrUnknownDriver

// Open connects to the store for driver ("sqlite3" or "postgres") and
// brings its schema up to date.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite3", "sqlite":
		return OpenSQLite(dsn)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, driver)
	}
}
