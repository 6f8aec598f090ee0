package shell

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

const (
	markEmpty     = "."
	markContested = "+"
)

func (that *Shell) render(game *entity.Game) error {
	cell, err := game.Board.Get(that.selected)
	if err != nil {
		// stale selection after an undo or a reload
		that.selected = nil
		cell = game.Board.Root()
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "turn: %s  root: %s  status: %s\n",
		that.teamName(game.Turn), that.stateName(game.Board.Root().State()), game.Status)

	if len(that.selected) > 0 {
		fmt.Fprintf(&sb, "board %s: %s\n", coord.PathString(that.selected), that.stateName(cell.State()))
	}

	if grid, ok := that.grid(cell); ok {
		sb.WriteString(grid)
	} else {
		for _, child := range cell.Children() {
			fmt.Fprintf(&sb, "  %s  %s\n", child.Pos(), that.stateName(child.State()))
		}
	}

	that.printf("%s", sb.String())

	return nil
}

// grid - 2D boards drawn with x to the right and y upwards.
func (that *Shell) grid(cell *board.Cell) (string, bool) {
	children := cell.Children()
	if len(children) == 0 || children[0].Pos().Arity() != 2 {
		return "", false
	}

	side := 0
	for _, child := range children {
		side = max(side, int(child.Pos()[0])+1, int(child.Pos()[1])+1)
	}

	var sb strings.Builder
	for y := side - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%d ", y)
		for x := range side {
			mark := " "
			if child, ok := cell.Child(coord.New(uint8(x), uint8(y))); ok {
				mark = that.mark(child.State())
			}
			sb.WriteString(" " + mark)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ")
	for x := range side {
		fmt.Fprintf(&sb, " %d", x)
	}
	sb.WriteString("\n")

	return sb.String(), true
}

func (that *Shell) mark(state board.State) string {
	switch state.Kind {
	case board.Empty:
		return markEmpty
	case board.Contested:
		return markContested
	case board.Owned:
		r, _ := utf8.DecodeRuneInString(that.teamName(state.Team))
		return string(r)
	default:
		return "?"
	}
}

func (that *Shell) stateName(state board.State) string {
	switch state.Kind {
	case board.Owned:
		return "owned by " + that.teamName(state.Team)
	case board.Empty, board.Contested:
		return state.Kind.String()
	default:
		return state.String()
	}
}
