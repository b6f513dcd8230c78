package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellStatus int8

const (
	Unknown      CellStatus = -2
	Flag         CellStatus = -1
	Mine         CellStatus = 64 // post-game-over
	ExplodedMine CellStatus = 65
	// 0-8 for open with given number of mined neighbours
)

func (s CellStatus) Revealed() bool {
	return 0 <= s && s <= 8
}

// Symbol is the single character the terminal shows for a cell.
func (s CellStatus) Symbol() string {
	switch s {
	case Unknown:
		return "."
	case Flag:
		return "P"
	case Mine:
		return "*"
	case ExplodedMine:
		return "X"
	case 0:
		return " "
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

func (s CellStatus) String() string {
	return s.Symbol()
}

type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Grid holds the real mine positions and what the player can see, both
// row-major.
type Grid struct {
	rows, cols int
	mines      []bool
	cells      []CellStatus
}

func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		mines: make([]bool, rows*cols),
		cells: make([]CellStatus, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = Unknown
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(p Point) bool {
	return 0 <= p.Row && p.Row < g.rows && 0 <= p.Col && p.Col < g.cols
}

// panics [AssertionError]
func (g *Grid) index(p Point) int {
	if !g.InBounds(p) {
		panic(AssertionError{fmt.Sprintf(
			"point %s outside %dx%d grid", p, g.rows, g.cols,
		)})
	}
	return p.Row*g.cols + p.Col
}

func (g *Grid) point(i int) Point {
	return Point{Row: i / g.cols, Col: i % g.cols}
}

func (g *Grid) PlaceMine(p Point) {
	g.mines[g.index(p)] = true
}

func (g *Grid) IsMine(p Point) bool {
	return g.mines[g.index(p)]
}

func (g *Grid) Status(p Point) CellStatus {
	return g.cells[g.index(p)]
}

func (g *Grid) setStatus(p Point, s CellStatus) {
	g.cells[g.index(p)] = s
}

func (g *Grid) MineCount() (count int) {
	for _, m := range g.mines {
		if m {
			count++
		}
	}
	return
}

// Neighbours returns the in-bounds cells at Chebyshev distance 1 from p, in
// row-major order.
func (g *Grid) Neighbours(p Point) []Point {
	ns := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Point{Row: p.Row + dr, Col: p.Col + dc}
			if g.InBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

func (g *Grid) AdjacentMines(p Point) int {
	n := 0
	for _, q := range g.Neighbours(p) {
		if g.mines[g.index(q)] {
			n++
		}
	}
	return n
}

// String draws the mine layer; handy in test failures.
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.rows {
		for col := range g.cols {
			if g.mines[row*g.cols+col] {
				fmt.Fprint(&b, "* ")
			} else {
				fmt.Fprint(&b, "- ")
			}
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
