package records

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/vancomm/termsweeper/internal/database"
)

const columns = "record_id, width, height, mine_count, won, moves, seed, started_at, ended_at"

type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateSQLite(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Save(ctx context.Context, r Record) error {
	if err := r.prepare(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO record (
	record_id, width, height, mine_count, won, moves, seed,
	started_at, ended_at, duration_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID.String(), r.Cols, r.Rows, r.Mines, r.Won, r.Moves, int64(r.Seed),
		r.StartedAt.UTC(), r.EndedAt.UTC(), r.Duration().Milliseconds(),
	)
	return err
}

func (s *SQLite) Best(ctx context.Context, f Filter) ([]Record, error) {
	query, named := f.query(columns)
	args := make([]any, 0, len(named))
	for name, value := range named {
		args = append(args, sql.Named(name, value))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Record, 0)
	for rows.Next() {
		var (
			r    Record
			id   string
			seed int64
		)
		if err := rows.Scan(
			&id, &r.Cols, &r.Rows, &r.Mines, &r.Won, &r.Moves, &seed,
			&r.StartedAt, &r.EndedAt,
		); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
