package mines

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of everything a renderer may show.
type Snapshot struct {
	Rows, Cols       int
	Cells            []CellStatus
	MineCount        int
	FlagsPlaced      int
	SquaresRemaining int /* safe squares still covered */
	Covered          int /* squares not cleared, mines included */
	Moves            int
	Phase            Phase
}

func (g *Game) Snapshot() Snapshot {
	cells := make([]CellStatus, len(g.grid.cells))
	copy(cells, g.grid.cells)
	covered := 0
	for _, c := range cells {
		if c == Unknown || c == Flag {
			covered++
		}
	}
	return Snapshot{
		Rows:             g.params.Rows,
		Cols:             g.params.Cols,
		Cells:            cells,
		MineCount:        g.params.MineCount,
		FlagsPlaced:      g.flags,
		SquaresRemaining: g.safeRemaining,
		Covered:          covered,
		Moves:            g.moves,
		Phase:            g.phase,
	}
}

func (s Snapshot) At(p Point) CellStatus {
	return s.Cells[p.Row*s.Cols+p.Col]
}

// MinesLeft is the mine count minus the flags placed; it goes negative when
// the player over-flags.
func (s Snapshot) MinesLeft() int {
	return s.MineCount - s.FlagsPlaced
}

func (s Snapshot) String() string {
	var b strings.Builder
	for row := range s.Rows {
		for col := range s.Cols {
			fmt.Fprint(&b, s.Cells[row*s.Cols+col].Symbol()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
