package windetect

import (
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
)

// Table - fast path for flat side x side boards where a line spans the whole side.
// Lines are derived from the side rather than written out by hand.
type Table struct {
	side  int
	lines [][]coord.Coordinate
}

func NewTable(side int) (*Table, error) {
	if side < 1 || side > 256 {
		return nil, fmt.Errorf("%w: side %d", apperror.ErrInvalidShape, side)
	}

	return &Table{
		side:  side,
		lines: tableLines(side),
	}, nil
}

// Lines - the winning lines, each with side distinct coordinates.
func (that *Table) Lines() [][]coord.Coordinate {
	return that.lines
}

func (that *Table) Captured(owned []coord.Coordinate, childCount int) (bool, error) {
	if childCount != that.side*that.side {
		return false, fmt.Errorf("%w: %d children, want %d", apperror.ErrUnsupportedBranchingFactor, childCount, that.side*that.side)
	}

	set := make(map[string]struct{}, len(owned))
	for _, c := range owned {
		if c.Arity() != 2 {
			return false, fmt.Errorf("%w: table lines are 2D, got %d", apperror.ErrArityMismatch, c.Arity())
		}

		set[c.Key()] = struct{}{}
	}

	for _, line := range that.lines {
		if containsAll(set, line) {
			return true, nil
		}
	}

	return false, nil
}

func containsAll(set map[string]struct{}, line []coord.Coordinate) bool {
	for _, c := range line {
		if _, ok := set[c.Key()]; !ok {
			return false
		}
	}

	return true
}

func tableLines(side int) [][]coord.Coordinate {
	lines := make([][]coord.Coordinate, 0, 2*side+2)

	for i := range side {
		row := make([]coord.Coordinate, side)
		col := make([]coord.Coordinate, side)
		for j := range side {
			row[j] = coord.New(uint8(i), uint8(j))
			col[j] = coord.New(uint8(j), uint8(i))
		}
		lines = append(lines, row, col)
	}

	diagonal := make([]coord.Coordinate, side)
	antiDiagonal := make([]coord.Coordinate, side)
	for i := range side {
		diagonal[i] = coord.New(uint8(i), uint8(i))
		antiDiagonal[i] = coord.New(uint8(i), uint8(side-1-i))
	}

	return append(lines, diagonal, antiDiagonal)
}
