package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/termsweeper/internal/database"
)

type Postgres struct {
	db *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	migrator, err := database.MigratePostgres(url)
	if err != nil {
		return nil, err
	}
	migrator.Close()

	pool, err := database.ConnectPostgres(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Postgres{db: pool}, nil
}

type recordRow struct {
	RecordId  string    `db:"record_id"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	MineCount int       `db:"mine_count"`
	Won       bool      `db:"won"`
	Moves     int       `db:"moves"`
	Seed      int64     `db:"seed"`
	StartedAt time.Time `db:"started_at"`
	EndedAt   time.Time `db:"ended_at"`
}

func (row recordRow) record() (Record, error) {
	id, err := uuid.Parse(row.RecordId)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:        id,
		Rows:      row.Height,
		Cols:      row.Width,
		Mines:     row.MineCount,
		Won:       row.Won,
		Moves:     row.Moves,
		Seed:      uint64(row.Seed),
		StartedAt: row.StartedAt,
		EndedAt:   row.EndedAt,
	}, nil
}

func (p *Postgres) Save(ctx context.Context, r Record) error {
	if err := r.prepare(); err != nil {
		return err
	}
	args := pgx.NamedArgs{
		"record_id":   r.ID.String(),
		"width":       r.Cols,
		"height":      r.Rows,
		"mine_count":  r.Mines,
		"won":         r.Won,
		"moves":       r.Moves,
		"seed":        int64(r.Seed),
		"started_at":  r.StartedAt,
		"ended_at":    r.EndedAt,
		"duration_ms": r.Duration().Milliseconds(),
	}
	_, err := p.db.Exec(
		ctx,
		`INSERT INTO record (
			record_id, width, height, mine_count, won, moves, seed,
			started_at, ended_at, duration_ms
		)
		VALUES (
			@record_id, @width, @height, @mine_count, @won, @moves, @seed,
			@started_at, @ended_at, @duration_ms
		);`,
		args,
	)
	return err
}

func (p *Postgres) Best(ctx context.Context, f Filter) ([]Record, error) {
	query, args := f.query(
		"record_id::text, width, height, mine_count, won, moves, seed, started_at, ended_at",
	)
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs(args))
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[recordRow])
	if err != nil {
		return nil, err
	}

	result := make([]Record, 0, len(found))
	for _, row := range found {
		r, err := row.record()
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
