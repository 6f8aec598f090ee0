package board

import (
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
)

// Move - a claimed leaf and the team that claimed it.
type Move struct {
	Path []coord.Coordinate `json:"path"`
	Team TeamID             `json:"team"`
}

// snapshot - states along the move's path, root first, before the move was applied.
type snapshot struct {
	move  Move
	prior []State
}

// Board - a root cell plus the history needed to take moves back.
type Board struct {
	root    *Cell
	shape   Shape
	rank    uint8
	history []snapshot
}

func New(rank uint8, shape Shape) (*Board, error) {
	root, err := GenerateShape(rank, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to generate board: %w", err)
	}

	return &Board{
		root:  root,
		shape: shape,
		rank:  rank,
	}, nil
}

func (that *Board) Root() *Cell {
	return that.root
}

func (that *Board) Shape() Shape {
	return that.shape
}

func (that *Board) Rank() uint8 {
	return that.rank
}

func (that *Board) Get(path []coord.Coordinate) (*Cell, error) {
	return that.root.Get(path)
}

// Play - applies a move and remembers how to revert it. An invalid path changes nothing.
func (that *Board) Play(path []coord.Coordinate, team TeamID) (bool, error) {
	if err := that.root.ValidateMove(path); err != nil {
		return false, err
	}

	cells := that.pathCells(path)

	prior := make([]State, len(cells))
	for i, cell := range cells {
		prior[i] = cell.state
	}

	changed, err := that.root.update(path, team)
	if err != nil {
		restore(cells, prior)
		return false, fmt.Errorf("failed to apply move %s: %w", coord.PathString(path), err)
	}

	that.history = append(that.history, snapshot{
		move:  Move{Path: coord.ClonePath(path), Team: team},
		prior: prior,
	})

	return changed, nil
}

// Undo - reverts the most recent move and returns it.
func (that *Board) Undo() (Move, error) {
	if len(that.history) == 0 {
		return Move{}, apperror.ErrNothingToUndo
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]

	restore(that.pathCells(last.move.Path), last.prior)

	return last.move, nil
}

// Moves - applied moves, oldest first.
func (that *Board) Moves() []Move {
	moves := make([]Move, len(that.history))
	for i, s := range that.history {
		moves[i] = s.move
	}

	return moves
}

// LastMove - the most recent move, ok is false on a fresh board.
func (that *Board) LastMove() (Move, bool) {
	if len(that.history) == 0 {
		return Move{}, false
	}

	return that.history[len(that.history)-1].move, true
}

// pathCells - the root followed by each cell the path descends into. The path must be valid.
func (that *Board) pathCells(path []coord.Coordinate) []*Cell {
	cells := make([]*Cell, 0, len(path)+1)

	cell := that.root
	cells = append(cells, cell)
	for _, pos := range path {
		cell, _ = cell.Child(pos)
		cells = append(cells, cell)
	}

	return cells
}

func restore(cells []*Cell, states []State) {
	for i, cell := range cells {
		cell.state = states[i]
	}
}
