package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrGameNotFound   = errors.New("game not found")
	ErrNothingToUndo  = errors.New("no moves to undo")
	ErrInvalidPath    = errors.New("invalid path")
	ErrArityMismatch  = errors.New("coordinate arity mismatch")
	ErrInvalidShape   = errors.New("invalid board shape")
	ErrUnknownCommand = errors.New("unknown command")

	ErrUnsupportedBranchingFactor = errors.New("unsupported branching factor")
)
