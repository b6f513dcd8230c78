package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/termsweeper/internal/config"
	"github.com/vancomm/termsweeper/internal/logging"
	"github.com/vancomm/termsweeper/internal/mines"
	"github.com/vancomm/termsweeper/internal/records"
	"github.com/vancomm/termsweeper/internal/terminal"
)

func play(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, color bool) error {
	log, err := logging.New(cfg.Log, cfg.Development)
	if err != nil {
		return err
	}
	mines.Log = log
	log.WithFields(cfg.Fields()).Debug("config loaded")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.RandSeed(time.Now())
	game, err := mines.NewGame(cfg.Params(), mines.NewRand(seed))
	if err != nil {
		return err
	}

	var (
		store   records.Store
		outcome terminal.Outcome
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Records.Enabled {
		g.Go(func() error {
			s, err := records.Open(gctx, cfg.Records.Driver, cfg.Records.DSN)
			if err != nil {
				// the game is still playable without records
				log.WithError(err).Warn("records unavailable")
				return nil
			}
			store = s
			return nil
		})
	}
	g.Go(func() error {
		session := terminal.NewSession(game, in, out,
			terminal.WithLogger(log.WithField("seed", seed)),
			terminal.WithColor(color),
		)
		var err error
		outcome, err = session.Run(gctx)
		return err
	})
	err = g.Wait()
	if store != nil {
		defer store.Close()
	}
	if err != nil {
		return err
	}

	if outcome.Phase != mines.Won && outcome.Phase != mines.Lost {
		return nil
	}
	if outcome.Phase == mines.Won {
		fmt.Fprintf(out, "Time: %s in %d moves\n", outcome.EndedAt.Sub(outcome.StartedAt).Round(time.Millisecond), outcome.Moves)
	}
	if store == nil {
		return nil
	}
	return saveRecord(context.WithoutCancel(ctx), store, log, out, game.Params(), seed, outcome)
}

func saveRecord(
	ctx context.Context,
	store records.Store,
	log logrus.FieldLogger,
	out io.Writer,
	params mines.Params,
	seed uint64,
	outcome terminal.Outcome,
) error {
	record := records.Record{
		ID:        uuid.New(),
		Rows:      params.Rows,
		Cols:      params.Cols,
		Mines:     params.MineCount,
		Won:       outcome.Phase == mines.Won,
		Moves:     outcome.Moves,
		Seed:      seed,
		StartedAt: outcome.StartedAt,
		EndedAt:   outcome.EndedAt,
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = record.EndedAt
	}
	if err := store.Save(ctx, record); err != nil {
		log.WithError(err).Error("unable to save record")
		return err
	}
	log.WithField("won", record.Won).Info("record saved")

	if !record.Won {
		return nil
	}
	best, err := store.Best(ctx, records.Filter{Params: &params, Limit: 1})
	if err != nil {
		return err
	}
	if len(best) == 1 && best[0].ID == record.ID {
		fmt.Fprintf(out, "New best time for %dx%d with %d mines!\n", params.Rows, params.Cols, params.MineCount)
	}
	return nil
}
