package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/termsweeper/internal/mines"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		flagMode bool
		want     Command
	}{
		{"3 4", false, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 2, Col: 3}, Action: mines.Reveal}}},
		{" 1,1 ", false, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 0, Col: 0}, Action: mines.Reveal}}},
		{"3 4", true, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 2, Col: 3}, Action: mines.ToggleFlag}}},
		{"f 9 9", false, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 8, Col: 8}, Action: mines.ToggleFlag}}},
		{"o 2 5", true, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 1, Col: 4}, Action: mines.Reveal}}},
		{"C 2 2", false, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: 1, Col: 1}, Action: mines.Chord}}},
		{"0 12", false, Command{Kind: MoveCommand, Move: mines.Move{Point: mines.Point{Row: -1, Col: 11}, Action: mines.Reveal}}},
		{"F", false, Command{Kind: FlagModeCommand}},
		{"q", false, Command{Kind: QuitCommand}},
		{"Quit", true, Command{Kind: QuitCommand}},
		{"?", false, Command{Kind: HelpCommand}},
		{"help", false, Command{Kind: HelpCommand}},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := Parse(test.line, test.flagMode)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		err  error
	}{
		{"", ErrEmptyCommand},
		{"   ", ErrEmptyCommand},
		{"x", ErrUnknownCommand},
		{"1 2 3", ErrUnknownCommand},
		{"q now", ErrArgCount},
		{"f 1", ErrArgCount},
		{"c", ErrArgCount},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			_, err := Parse(test.line, false)
			assert.ErrorIs(t, err, test.err)
		})
	}

	_, err := Parse("f a 2", false)
	assert.EqualError(t, err, "row must be a number")
	_, err = Parse("3 b", false)
	assert.EqualError(t, err, "column must be a number")
	_, err = Parse("o 3 b", false)
	assert.EqualError(t, err, "column must be a number")
}
