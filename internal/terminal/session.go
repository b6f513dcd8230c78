package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/termsweeper/internal/mines"
)

const help = `Commands (rows and columns start at 1):
  ROW COL      clear a square (toggle a flag in flag mode)
  f            enter or leave flag placement mode
  f ROW COL    toggle a flag
  c ROW COL    clear around a number whose flags are all placed
  q            exit the game
  h            show this help`

// Outcome is what the command needs to know once a session ends.
type Outcome struct {
	Phase     mines.Phase
	Moves     int
	StartedAt time.Time /* first accepted reveal */
	EndedAt   time.Time
}

type Session struct {
	game     *mines.Game
	in       io.Reader
	render   *Renderer
	log      logrus.FieldLogger
	now      func() time.Time
	flagMode bool
}

type Option func(*Session)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithColor(color bool) Option {
	return func(s *Session) { s.render.color = color }
}

func NewSession(game *mines.Game, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		game:   game,
		in:     in,
		render: NewRenderer(out, false),
		log:    logrus.StandardLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// readLines feeds input lines to the session so that a cancelled context
// does not wait on a blocked read. It stops sending once done is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// Run plays until the game ends, the player quits, input runs out or ctx
// is cancelled. The last three leave the game [mines.Exited].
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	var outcome Outcome
	if s.game.Phase() == mines.Playing {
		outcome.StartedAt = s.now()
	}

	if err := s.render.Line("Welcome to terminal minesweeper! Enter h for help."); err != nil {
		return outcome, err
	}
	if err := s.render.Board(s.game.Snapshot()); err != nil {
		return outcome, err
	}

	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(s.in, done)
	for {
		if err := s.prompt(); err != nil {
			return outcome, err
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			s.log.Info("session cancelled")
			return s.exit(outcome)
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-errc; err != nil {
				return outcome, err
			}
			s.log.Info("input closed")
			return s.exit(outcome)
		}

		cmd, err := Parse(line, s.flagMode)
		if errors.Is(err, ErrEmptyCommand) {
			continue
		}
		if err != nil {
			s.log.WithField("line", line).Debug("unparsable input")
			if err := s.render.Line("Invalid input: %s", err); err != nil {
				return outcome, err
			}
			continue
		}

		switch cmd.Kind {
		case QuitCommand:
			return s.exit(outcome)
		case HelpCommand:
			err = s.render.Line(help)
		case FlagModeCommand:
			s.flagMode = !s.flagMode
			if s.flagMode {
				err = s.render.Line("***** FLAG PLACEMENT MODE *****")
			} else {
				err = s.render.Line("Flag mode off")
			}
		case MoveCommand:
			err = s.move(cmd.Move, &outcome)
		}
		if err != nil {
			return outcome, err
		}

		if phase := s.game.Phase(); phase.Terminal() {
			outcome.Phase = phase
			outcome.Moves = s.game.Moves()
			outcome.EndedAt = s.now()
			s.log.WithFields(logrus.Fields{
				"phase":    phase.String(),
				"moves":    outcome.Moves,
				"duration": outcome.EndedAt.Sub(outcome.StartedAt).String(),
			}).Info("game over")
			return outcome, s.render.Banner(phase)
		}
	}
}

func (s *Session) prompt() error {
	if s.flagMode {
		_, err := io.WriteString(s.render.w, "[Flag mode] row col (f to leave): ")
		return err
	}
	_, err := io.WriteString(s.render.w, "Your move: ")
	return err
}

func (s *Session) move(m mines.Move, outcome *Outcome) error {
	wasSetup := s.game.Phase() == mines.Setup
	res, err := s.game.Apply(m)
	if err != nil {
		var me *mines.MoveError
		if !errors.As(err, &me) {
			return err
		}
		s.log.WithError(err).Debug("move rejected")
		return s.render.Line("Invalid move! %s", me.Err)
	}

	if wasSetup && s.game.Phase() != mines.Setup {
		outcome.StartedAt = s.now()
	}
	s.log.WithFields(logrus.Fields{
		"action":   m.Action.String(),
		"at":       m.Point.String(),
		"revealed": res.Revealed,
	}).Debug("move")
	return s.render.Board(res.Snapshot)
}

func (s *Session) exit(outcome Outcome) (Outcome, error) {
	if err := s.game.Quit(); err != nil {
		return outcome, err
	}
	outcome.Phase = mines.Exited
	outcome.Moves = s.game.Moves()
	outcome.EndedAt = s.now()
	return outcome, s.render.Banner(mines.Exited)
}
