package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusDrawn    = "drawn"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Rules - per game options on top of the board shape.
type Rules struct {
	AllowReclaim bool `json:"allow_reclaim"`
}

// Game - a fractal board plus whose turn it is and how the game ended.
type Game struct {
	ID     string
	Board  *board.Board
	Rules  Rules
	Turn   board.TeamID
	Status string
	Winner *board.TeamID
}

func NewGame(id string, rank uint8, shape board.Shape, rules Rules) (*Game, error) {
	b, err := board.New(rank, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		ID:     id,
		Board:  b,
		Rules:  rules,
		Turn:   TeamX,
		Status: StatusOngoing,
	}, nil
}

// MakeTurn - plays team's move at path and passes the turn to the other team.
func (that *Game) MakeTurn(team board.TeamID, path []coord.Coordinate) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != team {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Root().ValidateMove(path); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if !that.Rules.AllowReclaim {
		leaf, err := that.Board.Get(path)
		if err != nil {
			return fmt.Errorf("invalid turn: %w", err)
		}

		if !leaf.State().IsEmpty() {
			return apperror.ErrCellOccupied
		}
	}

	if _, err := that.Board.Play(path, team); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Turn = OtherTeam(team)
	that.UpdateGameState()

	return nil
}

// Undo - takes back the last move; the team that made it is to move again.
func (that *Game) Undo() (board.Move, error) {
	move, err := that.Board.Undo()
	if err != nil {
		return board.Move{}, err
	}

	that.Turn = move.Team
	that.UpdateGameState()

	return move, nil
}

// UpdateGameState - derives status and winner from the root cell.
func (that *Game) UpdateGameState() {
	root := that.Board.Root()

	if owner, ok := root.State().Owner(); ok {
		that.Status = StatusFinished
		that.Winner = &owner

		return
	}

	that.Winner = nil

	// with re-claiming allowed a full board can still change hands
	if !that.Rules.AllowReclaim && allLeavesPlayed(root) {
		that.Status = StatusDrawn
		return
	}

	that.Status = StatusOngoing
}

func allLeavesPlayed(root *board.Cell) bool {
	for _, leaf := range root.Leaves() {
		if leaf.State().IsEmpty() {
			return false
		}
	}

	return true
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished || that.Status == StatusDrawn
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// RestoreGame - rebuilds a game by replaying its moves in order.
func RestoreGame(id string, rank uint8, shape board.Shape, rules Rules, moves []board.Move) (*Game, error) {
	game, err := NewGame(id, rank, shape, rules)
	if err != nil {
		return nil, err
	}

	for i, move := range moves {
		if _, err = game.Board.Play(move.Path, move.Team); err != nil {
			return nil, fmt.Errorf("failed to replay move %d: %w", i, err)
		}

		game.Turn = OtherTeam(move.Team)
	}

	game.UpdateGameState()

	return game, nil
}
