package mines

// Validate reports whether m would be accepted by [Game.Apply]. It has no
// side effects.
func (g *Game) Validate(m Move) error {
	if g.phase.Terminal() {
		return &MoveError{m, ErrGameOver}
	}
	if !g.grid.InBounds(m.Point) {
		return &MoveError{m, ErrOutOfBounds}
	}

	s := g.grid.Status(m.Point)
	switch m.Action {
	case Reveal:
		if s == Flag {
			return &MoveError{m, ErrFlagged}
		}
		if s != Unknown {
			return &MoveError{m, ErrAlreadyRevealed}
		}
	case ToggleFlag:
		if s != Unknown && s != Flag {
			return &MoveError{m, ErrAlreadyRevealed}
		}
	case Chord:
		if !s.Revealed() || s == 0 {
			return &MoveError{m, ErrInvalidTarget}
		}
	default:
		return &MoveError{m, ErrInvalidTarget}
	}
	return nil
}
