// Package board holds the recursive fractal board: cells whose ownership is derived
// bottom-up from the lines their children form.
package board

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/windetect"
)

// Cell - a node of the board. A cell without children is a leaf.
type Cell struct {
	rank     uint8
	pos      coord.Coordinate
	children []*Cell
	index    map[string]int
	state    State
	detector windetect.Detector
}

func newCell(rank uint8, pos coord.Coordinate, detector windetect.Detector) *Cell {
	return &Cell{
		rank:     rank,
		pos:      pos,
		index:    make(map[string]int),
		detector: detector,
	}
}

func (that *Cell) addChild(child *Cell) {
	that.index[child.pos.Key()] = len(that.children)
	that.children = append(that.children, child)
}

// Rank - nesting depth from the root, the root is 0.
func (that *Cell) Rank() uint8 {
	return that.rank
}

// Pos - position of the cell inside its parent, nil for the root.
func (that *Cell) Pos() coord.Coordinate {
	return slices.Clone(that.pos)
}

func (that *Cell) State() State {
	return that.state
}

func (that *Cell) IsLeaf() bool {
	return len(that.children) == 0
}

// Children - children in the order they were generated.
func (that *Cell) Children() []*Cell {
	return that.children
}

func (that *Cell) Child(pos coord.Coordinate) (*Cell, bool) {
	i, ok := that.index[pos.Key()]
	if !ok {
		return nil, false
	}

	return that.children[i], true
}

// Depth - number of levels below this cell, i.e. the length of a path to a leaf.
func (that *Cell) Depth() int {
	depth := 0
	for cell := that; !cell.IsLeaf(); cell = cell.children[0] {
		depth++
	}

	return depth
}

// Get - the cell addressed by path, which may stop above the leaves.
func (that *Cell) Get(path []coord.Coordinate) (*Cell, error) {
	cell := that
	for level, pos := range path {
		child, ok := cell.Child(pos)
		if !ok {
			return nil, fmt.Errorf("%w: no cell %s at level %d", apperror.ErrInvalidPath, pos, level)
		}
		cell = child
	}

	return cell, nil
}

// ValidateMove - checks that path addresses a leaf below this cell.
func (that *Cell) ValidateMove(path []coord.Coordinate) error {
	target, err := that.Get(path)
	if err != nil {
		return err
	}

	if !target.IsLeaf() {
		return fmt.Errorf("%w: path %q stops %d levels above the leaves",
			apperror.ErrInvalidPath, coord.PathString(path), target.Depth())
	}

	return nil
}

// Update - claims the leaf addressed by path for team and recomputes every ancestor
// on the way back up. Reports whether this cell's state changed.
// The path is validated before anything is touched.
func (that *Cell) Update(path []coord.Coordinate, team TeamID) (bool, error) {
	if err := that.ValidateMove(path); err != nil {
		return false, err
	}

	return that.update(path, team)
}

func (that *Cell) update(path []coord.Coordinate, team TeamID) (bool, error) {
	if len(path) == 0 {
		that.state = OwnedBy(team)
		return true, nil
	}

	child, _ := that.Child(path[0])

	changed, err := child.update(path[1:], team)
	if err != nil || !changed {
		return false, err
	}

	next, err := that.Check(team)
	if err != nil {
		return false, err
	}

	if next == that.state {
		return false, nil
	}

	that.state = next

	return true, nil
}

// Check - the state this cell should have given its children, with team as the
// candidate owner.
func (that *Cell) Check(team TeamID) (State, error) {
	if that.IsLeaf() {
		return that.state, nil
	}

	played := false
	for _, child := range that.children {
		if !child.state.IsEmpty() {
			played = true
			break
		}
	}

	if !played {
		return EmptyState(), nil
	}

	captured, err := that.Captured(team)
	if err != nil {
		return State{}, err
	}

	if captured {
		return OwnedBy(team), nil
	}

	return ContestedState(), nil
}

// Captured - whether team owns a winning line among the children.
func (that *Cell) Captured(team TeamID) (bool, error) {
	owned := make([]coord.Coordinate, 0, len(that.children))
	for _, child := range that.children {
		if owner, ok := child.state.Owner(); ok && owner == team {
			owned = append(owned, child.pos)
		}
	}

	captured, err := that.detector.Captured(owned, len(that.children))
	if err != nil {
		return false, fmt.Errorf("failed to check rank %d cell: %w", that.rank, err)
	}

	return captured, nil
}

// Leaves - every leaf below this cell, depth first.
func (that *Cell) Leaves() []*Cell {
	if that.IsLeaf() {
		return []*Cell{that}
	}

	var leaves []*Cell
	for _, child := range that.children {
		leaves = append(leaves, child.Leaves()...)
	}

	return leaves
}
