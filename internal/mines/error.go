package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("outside the board")
	ErrAlreadyRevealed = errors.New("square already cleared")
	ErrFlagged         = errors.New("square is flagged")
	ErrInvalidTarget   = errors.New("invalid target")
	ErrGameOver        = errors.New("game is over")
)

// MoveError is returned for every rejected move. The game is left exactly
// as it was.
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Move.Action, e.Move.Point, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

type ConfigError struct {
	Params Params
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid game params %s: %s", e.Params, e.Reason)
}

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
