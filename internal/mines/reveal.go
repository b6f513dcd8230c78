package mines

// reveal opens p and, for every opened square with no neighbouring mines,
// its covered neighbours as well. p must be covered and not mined. Flags
// are never opened, and a square is only enqueued while still [Unknown], so
// each square is visited at most once. Returns the number of squares
// opened.
func (g *Game) reveal(p Point) int {
	var (
		queue  = []Point{p}
		opened = 0
	)
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i := g.grid.index(q)
		if g.grid.cells[i] != Unknown {
			continue
		}
		if g.grid.mines[i] {
			panic(AssertionError{"cascade reached mine at " + q.String()})
		}

		n := g.grid.AdjacentMines(q)
		g.grid.cells[i] = CellStatus(n)
		g.safeRemaining--
		opened++

		if n == 0 {
			for _, r := range g.grid.Neighbours(q) {
				if g.grid.Status(r) == Unknown {
					queue = append(queue, r)
				}
			}
		}
	}
	return opened
}

// revealAll discloses the whole board once the game is over: every mine is
// shown (over flags too) and every other square gets its count.
func (g *Game) revealAll() {
	for i, mined := range g.grid.mines {
		switch {
		case mined:
			if g.grid.cells[i] != ExplodedMine {
				g.grid.cells[i] = Mine
			}
		case !g.grid.cells[i].Revealed():
			g.grid.cells[i] = CellStatus(g.grid.AdjacentMines(g.grid.point(i)))
		}
	}
	g.safeRemaining = 0
}
