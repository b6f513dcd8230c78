package terminal

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/vancomm/termsweeper/internal/mines"
)

type CommandKind int

const (
	MoveCommand CommandKind = iota
	FlagModeCommand
	QuitCommand
	HelpCommand
)

type Command struct {
	Kind CommandKind
	Move mines.Move
}

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
)

// Maps known commands to accepted numbers of arguments
var commandNargs = map[string][]int{
	"q": {0},
	"h": {0},
	"?": {0},
	"f": {0, 2},
	"o": {2},
	"c": {2},
}

var aliases = map[string]string{
	"quit":   "q",
	"exit":   "q",
	"help":   "h",
	"flag":   "f",
	"open":   "o",
	"reveal": "o",
	"chord":  "c",
}

// parseRowCol turns 1-based user coordinates into a zero-based point.
// Bounds are left to the game.
func parseRowCol(twoStrings []string) (p mines.Point, err error) {
	row, err := strconv.Atoi(twoStrings[0])
	if err != nil {
		return p, errors.New("row must be a number")
	}
	col, err := strconv.Atoi(twoStrings[1])
	if err != nil {
		return p, errors.New("column must be a number")
	}
	return mines.Point{Row: row - 1, Col: col - 1}, nil
}

// Parse reads one line of player input. A bare "row col" reveals, or
// toggles a flag while flag mode is on.
func Parse(line string, flagMode bool) (Command, error) {
	parts := strings.Fields(strings.ReplaceAll(strings.ToLower(line), ",", " "))
	if len(parts) == 0 {
		return Command{}, ErrEmptyCommand
	}

	if len(parts) == 2 {
		if _, err := strconv.Atoi(parts[0]); err == nil {
			p, err := parseRowCol(parts)
			if err != nil {
				return Command{}, err
			}
			action := mines.Reveal
			if flagMode {
				action = mines.ToggleFlag
			}
			return Command{Kind: MoveCommand, Move: mines.Move{Point: p, Action: action}}, nil
		}
	}

	name := parts[0]
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	nargs, ok := commandNargs[name]
	if !ok {
		return Command{}, ErrUnknownCommand
	}
	args := parts[1:]
	if !slices.Contains(nargs, len(args)) {
		return Command{}, ErrArgCount
	}

	switch name {
	case "q":
		return Command{Kind: QuitCommand}, nil
	case "h", "?":
		return Command{Kind: HelpCommand}, nil
	case "f":
		if len(args) == 0 {
			return Command{Kind: FlagModeCommand}, nil
		}
		return moveCommand(args, mines.ToggleFlag)
	case "o":
		return moveCommand(args, mines.Reveal)
	case "c":
		return moveCommand(args, mines.Chord)
	}
	return Command{}, ErrUnknownCommand
}

func moveCommand(args []string, action mines.Action) (Command, error) {
	p, err := parseRowCol(args)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: MoveCommand, Move: mines.Move{Point: p, Action: action}}, nil
}
