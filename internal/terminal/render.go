package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/termsweeper/internal/mines"
)

// digit colours follow the classic palette
var digitColors = [9]string{"", "12", "2", "9", "4", "1", "6", "0", "8"}

type styles struct {
	hidden, flag, mine, exploded, label lipgloss.Style
	digits                              [9]lipgloss.Style
	won, lost                           lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	s := styles{
		hidden:   r.NewStyle().Foreground(lipgloss.Color("244")),
		flag:     r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		mine:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		exploded: r.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.Color("235")).Bold(true),
		label:    r.NewStyle().Foreground(lipgloss.Color("248")),
		won:      r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		lost:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	for i := 1; i < len(digitColors); i++ {
		s.digits[i] = r.NewStyle().Foreground(lipgloss.Color(digitColors[i]))
	}
	return s
}

// Renderer draws snapshots as text. With colour off it writes plain
// symbols, which is what tests compare against.
type Renderer struct {
	w      io.Writer
	color  bool
	styles styles
}

func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{
		w:      w,
		color:  color,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func (r *Renderer) cell(c mines.CellStatus) string {
	sym := c.Symbol()
	switch {
	case c == mines.Unknown:
		return r.paint(r.styles.hidden, sym)
	case c == mines.Flag:
		return r.paint(r.styles.flag, sym)
	case c == mines.Mine:
		return r.paint(r.styles.mine, sym)
	case c == mines.ExplodedMine:
		return r.paint(r.styles.exploded, sym)
	case 1 <= c && c <= 8:
		return r.paint(r.styles.digits[c], sym)
	default:
		return sym
	}
}

// Board writes the grid with 1-based row and column labels and the
// counters beside it.
func (r *Renderer) Board(s mines.Snapshot) error {
	var (
		b      strings.Builder
		colW   = len(strconv.Itoa(s.Cols))
		labelW = len(strconv.Itoa(s.Rows))
	)

	fmt.Fprintf(&b, "\n%*s ", labelW+1, "")
	for col := range s.Cols {
		b.WriteString(r.paint(r.styles.label, fmt.Sprintf("%-*d", colW+1, col+1)))
	}
	b.WriteString("\n")

	var (
		mineText  = fmt.Sprintf("Mines remaining: %d", s.MinesLeft())
		coverText = fmt.Sprintf("Uncleared squares: %d", s.Covered)
		side      = map[int]string{}
	)
	if s.Rows > 4 {
		side[2], side[4] = mineText, coverText
	}
	for row := range s.Rows {
		b.WriteString(" " + r.paint(r.styles.label, fmt.Sprintf("%*d", labelW, row+1)) + " ")
		for col := range s.Cols {
			b.WriteString(r.cell(s.At(mines.Point{Row: row, Col: col})))
			b.WriteString(strings.Repeat(" ", colW))
		}
		if text, ok := side[row]; ok {
			b.WriteString("       " + text)
		}
		b.WriteString("\n")
	}
	if s.Rows <= 4 {
		b.WriteString(mineText + "  " + coverText + "\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Banner prints the end-of-game message for terminal phases.
func (r *Renderer) Banner(p mines.Phase) error {
	var text string
	switch p {
	case mines.Won:
		text = r.paint(r.styles.won, "YOU WON! Congratulations")
	case mines.Lost:
		text = r.paint(r.styles.lost, "YOU EXPLODED AND DIED! Game over")
	case mines.Exited:
		text = "Game exited."
	default:
		return nil
	}
	_, err := fmt.Fprintf(r.w, "%s\nThanks for playing\n\n", text)
	return err
}

func (r *Renderer) Line(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}
