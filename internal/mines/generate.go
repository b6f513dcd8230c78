package mines

import (
	"fmt"
	"math/rand/v2"
)

// protectedCells is the size of the 3x3 zone kept free of mines around the
// first move.
const protectedCells = 9

// MaxSide bounds each board dimension so that a board always fits in
// memory.
const MaxSide = 1000

type Params struct {
	Rows, Cols, MineCount int
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.MineCount)
}

func (p Params) Cells() int {
	return p.Rows * p.Cols
}

// MaxMines is the largest mine count that still leaves room for the
// protected zone wherever the first move lands.
func (p Params) MaxMines() int {
	return p.Cells() - protectedCells
}

func (p Params) Validate() error {
	switch {
	case p.Rows < 1 || p.Cols < 1:
		return &ConfigError{p, "board must have at least one row and column"}
	case p.Rows > MaxSide || p.Cols > MaxSide:
		return &ConfigError{p, fmt.Sprintf("board sides are limited to %d squares", MaxSide)}
	case p.MineCount < 1:
		return &ConfigError{p, "at least one mine is required"}
	case p.MineCount > p.MaxMines():
		return &ConfigError{p, fmt.Sprintf(
			"at most %d mines fit outside the first move's zone", p.MaxMines(),
		)}
	}
	return nil
}

// PlaceMines mines exactly count distinct cells of g, none within one square
// of center. Mines are drawn without replacement from the free cells, so
// the loop always terminates; when there are not enough free cells nothing
// is placed and a [ConfigError] is returned.
func PlaceMines(g *Grid, center Point, count int, r *rand.Rand) error {
	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, g.rows*g.cols)
	for row := range g.rows {
		for col := range g.cols {
			if absDiff(center.Row, row) > 1 || absDiff(center.Col, col) > 1 {
				if i := row*g.cols + col; !g.mines[i] {
					candidates = append(candidates, i)
				}
			}
		}
	}

	if len(candidates) < count {
		return &ConfigError{
			Params{g.rows, g.cols, count},
			fmt.Sprintf("only %d cells available around %s", len(candidates), center),
		}
	}

	/*
	 * Now pick count off the list at random.
	 */
	k := len(candidates)
	for range count {
		i := r.IntN(k)
		g.mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	Log.WithField("center", center.String()).
		WithField("count", count).
		Debug("mines placed")

	return nil
}
