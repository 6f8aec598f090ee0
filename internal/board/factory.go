package board

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/windetect"
)

// MaxLeaves - upper bound on the number of leaves a generated board may have.
const MaxLeaves = 1 << 20

// Shape - geometry shared by every level of a board.
type Shape struct {
	Side int `json:"side"` // cells per axis
	Dims int `json:"dims"` // coordinate arity
	Line int `json:"line"` // cells needed in a row to capture
}

// StandardShape - 3x3 levels, three in a row.
func StandardShape() Shape {
	return Shape{Side: 3, Dims: 2, Line: 3}
}

// Branching - number of children of every internal cell.
func (that Shape) Branching() int {
	n := 1
	for range that.Dims {
		n *= that.Side
		if n > MaxLeaves {
			return MaxLeaves + 1
		}
	}

	return n
}

func (that Shape) Validate() error {
	switch {
	case that.Side < 1 || that.Side > 256:
		return fmt.Errorf("%w: side %d", apperror.ErrInvalidShape, that.Side)
	case that.Dims < 1 || that.Dims > 8:
		return fmt.Errorf("%w: dims %d", apperror.ErrInvalidShape, that.Dims)
	case that.Line < 1 || that.Line > that.Side:
		return fmt.Errorf("%w: line %d on side %d", apperror.ErrInvalidShape, that.Line, that.Side)
	case that.Branching() > MaxLeaves:
		return fmt.Errorf("%w: %d children per cell", apperror.ErrInvalidShape, that.Branching())
	}

	return nil
}

// Generate - a standard board with rank levels of sub-boards above the leaf grid.
// Rank 0 is a single 3x3 grid of leaves.
func Generate(rank uint8) *Cell {
	root, err := GenerateShape(rank, StandardShape())
	if err != nil {
		panic(fmt.Errorf("standard board of rank %d: %w", rank, err))
	}

	return root
}

// GenerateShape - a uniform board of the given shape; paths from its root have rank+1 coordinates.
func GenerateShape(rank uint8, shape Shape) (*Cell, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	// leaves sit at rank+1, which must still fit a cell's rank
	if rank == math.MaxUint8 {
		return nil, fmt.Errorf("%w: rank %d is too deep", apperror.ErrInvalidShape, rank)
	}

	leaves := 1
	for range int(rank) + 1 {
		leaves *= shape.Branching()
		if leaves > MaxLeaves {
			return nil, fmt.Errorf("%w: rank %d exceeds %d leaves", apperror.ErrInvalidShape, rank, MaxLeaves)
		}
	}

	detector, err := detectorFor(shape)
	if err != nil {
		return nil, err
	}

	grid := coord.Grid(shape.Side, shape.Dims)

	return generate(0, int(rank)+1, nil, grid, detector), nil
}

// detectorFor - the line table for flat boards whose lines span a whole side,
// subset search otherwise.
func detectorFor(shape Shape) (windetect.Detector, error) {
	if shape.Dims == 2 && shape.Line == shape.Side {
		table, err := windetect.NewTable(shape.Side)
		if err != nil {
			return nil, fmt.Errorf("failed to build line table: %w", err)
		}

		return table, nil
	}

	return windetect.NewSubset(shape.Line, shape.Branching()), nil
}

func generate(rank uint8, levels int, pos coord.Coordinate, grid []coord.Coordinate, detector windetect.Detector) *Cell {
	cell := newCell(rank, pos, detector)
	if levels == 0 {
		return cell
	}

	for _, childPos := range grid {
		cell.addChild(generate(rank+1, levels-1, childPos, grid, detector))
	}

	return cell
}
