package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Phase int8

const (
	Setup Phase = iota
	Playing
	Won
	Lost
	Exited
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("Phase(%d)", int8(p))
	}
}

// Terminal reports whether no further move can be accepted.
func (p Phase) Terminal() bool {
	return p == Won || p == Lost || p == Exited
}

type Action int8

const (
	Reveal Action = iota
	ToggleFlag
	Chord
)

func (a Action) String() string {
	switch a {
	case Reveal:
		return "reveal"
	case ToggleFlag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return fmt.Sprintf("Action(%d)", int8(a))
	}
}

type Move struct {
	Point
	Action Action
}

// Result describes an accepted move.
type Result struct {
	Move     Move
	Revealed int
	Snapshot Snapshot
}

// Game is one session of play. It is not safe for concurrent use.
type Game struct {
	params        Params
	grid          *Grid
	phase         Phase
	safeRemaining int /* non-mine squares still covered */
	flags         int
	moves         int
	start         Point
	rand          *rand.Rand
}

// NewGame validates params and returns a game in [Setup]. Mines are placed
// on the first reveal so that it can never hit one.
func NewGame(params Params, r *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		params:        params,
		grid:          NewGrid(params.Rows, params.Cols),
		phase:         Setup,
		safeRemaining: params.Cells() - params.MineCount,
		rand:          r,
	}
	return g, nil
}

// NewGameFromLayout starts a game in [Playing] with mines at the given
// points. It skips first-move protection and exists for fixtures and
// replays.
func NewGameFromLayout(rows, cols int, layout []Point) (*Game, error) {
	if rows < 1 || cols < 1 || rows > MaxSide || cols > MaxSide {
		return nil, &ConfigError{
			Params{rows, cols, len(layout)},
			fmt.Sprintf("board sides must be between 1 and %d squares", MaxSide),
		}
	}
	grid := NewGrid(rows, cols)
	for _, p := range layout {
		if !grid.InBounds(p) {
			return nil, &ConfigError{
				Params{rows, cols, len(layout)},
				fmt.Sprintf("mine %s outside the board", p),
			}
		}
		grid.PlaceMine(p)
	}
	params := Params{Rows: rows, Cols: cols, MineCount: grid.MineCount()}
	if params.MineCount == params.Cells() {
		return nil, &ConfigError{params, "layout leaves no safe square"}
	}
	g := &Game{
		params:        params,
		grid:          grid,
		phase:         Playing,
		safeRemaining: params.Cells() - params.MineCount,
	}
	return g, nil
}

func (g *Game) Params() Params { return g.params }
func (g *Game) Phase() Phase { return g.phase }
func (g *Game) SafeRemaining() int { return g.safeRemaining }
func (g *Game) FlagsPlaced() int { return g.flags }
func (g *Game) Moves() int { return g.moves }
func (g *Game) FirstMove() Point { return g.start }

func (g *Game) Status(p Point) CellStatus {
	return g.grid.Status(p)
}

// Apply validates m and carries it out. Rejected moves return a
// [*MoveError] and leave the game untouched.
func (g *Game) Apply(m Move) (Result, error) {
	if err := g.Validate(m); err != nil {
		return Result{}, err
	}

	res := Result{Move: m}
	switch m.Action {
	case ToggleFlag:
		g.toggleFlag(m.Point)
	case Reveal:
		if g.phase == Setup {
			if err := g.begin(m.Point); err != nil {
				return Result{}, err
			}
		}
		g.moves++
		res.Revealed = g.open(m.Point)
	case Chord:
		g.moves++
		res.Revealed = g.chord(m.Point)
	}
	res.Snapshot = g.Snapshot()
	return res, nil
}

// Quit ends the session without touching the board.
func (g *Game) Quit() error {
	if g.phase.Terminal() {
		return ErrGameOver
	}
	g.phase = Exited
	Log.WithField("moves", g.moves).Debug("game exited")
	return nil
}

func (g *Game) begin(p Point) error {
	if err := PlaceMines(g.grid, p, g.params.MineCount, g.rand); err != nil {
		return err
	}
	g.start = p
	g.phase = Playing
	return nil
}

func (g *Game) toggleFlag(p Point) {
	switch g.grid.Status(p) {
	case Unknown:
		g.grid.setStatus(p, Flag)
		g.flags++
	case Flag:
		g.grid.setStatus(p, Unknown)
		g.flags--
	}
}

// open reveals p, which must be covered and unflagged, and settles the
// phase.
func (g *Game) open(p Point) int {
	if g.grid.IsMine(p) {
		g.explode(p)
		return 0
	}
	n := g.reveal(p)
	g.checkWin()
	return n
}

// chord opens every covered neighbour of a numbered square once the player
// has flagged as many neighbours as the number says.
func (g *Game) chord(p Point) int {
	want := int(g.grid.Status(p))
	covered := make([]Point, 0, 8)
	flagged := 0
	for _, q := range g.grid.Neighbours(p) {
		switch g.grid.Status(q) {
		case Flag:
			flagged++
		case Unknown:
			covered = append(covered, q)
		}
	}
	if flagged != want {
		return 0
	}

	n := 0
	for _, q := range covered {
		if g.grid.Status(q) != Unknown {
			continue // opened by an earlier cascade
		}
		if g.grid.IsMine(q) {
			g.explode(q)
			return n
		}
		n += g.reveal(q)
		if g.checkWin() {
			return n
		}
	}
	return n
}

func (g *Game) explode(p Point) {
	g.grid.setStatus(p, ExplodedMine)
	g.phase = Lost
	g.revealAll()
	Log.WithFields(logrus.Fields{
		"at":    p.String(),
		"moves": g.moves,
	}).Debug("game lost")
}

func (g *Game) checkWin() bool {
	if g.safeRemaining > 0 {
		return false
	}
	g.phase = Won
	g.revealAll()
	Log.WithFields(logrus.Fields{
		"params": g.params.String(),
		"moves":  g.moves,
	}).Debug("game won")
	return true
}
