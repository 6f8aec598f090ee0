package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

const helpText = `commands:
  new [rank]        start a game (rank 0 is a single grid)
  open <id>         continue a stored game
  select <c> [...]  descend into coordinate c, e.g. "select 1,1"; reaching a leaf plays it
  play <path>       play a full path at once, e.g. "play 0,0/2,1"
  back              go up one level
  reset             clear the selection
  undo              take back the last move
  show              print the selected board
  quit
`

func (that *Shell) handleNew(ctx context.Context, args []string) error {
	var (
		game *entity.Game
		err  error
	)

	if len(args) > 0 {
		rank, parseErr := strconv.ParseUint(args[0], 10, 8)
		if parseErr != nil {
			return fmt.Errorf("bad rank %q: %w", args[0], parseErr)
		}

		game, err = that.uGame.CreateGame(ctx, uint8(rank))
	} else {
		game, err = that.uGame.CreateDefaultGame(ctx)
	}

	if err != nil {
		return err
	}

	that.gameID = game.ID
	that.selected = nil

	that.printf("game %s started\n", game.ID)

	return that.render(game)
}

func (that *Shell) handleOpen(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: open <id>")
	}

	game, err := that.uGame.GetGame(ctx, args[0])
	if err != nil {
		return err
	}

	that.gameID = game.ID
	that.selected = nil

	return that.render(game)
}

// handleSelect - extends the selection one level per coordinate. Once it reaches a
// leaf the move is submitted for the team to move and the selection starts over.
// A coordinate that does not resolve leaves the selection as it was.
func (that *Shell) handleSelect(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: select <coordinate> [...]")
	}

	game, err := that.currentGame(ctx)
	if err != nil {
		return err
	}

	selected := coord.ClonePath(that.selected)
	for _, arg := range args {
		pos, err := coord.Parse(arg)
		if err != nil {
			return err
		}

		selected = append(selected, pos)

		cell, err := game.Board.Get(selected)
		if err != nil {
			return err
		}

		if cell.IsLeaf() {
			that.selected = nil

			return that.submit(ctx, game, selected)
		}
	}

	that.selected = selected

	return that.render(game)
}

func (that *Shell) handlePlay(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: play <path>")
	}

	path, err := coord.ParsePath(args[0])
	if err != nil {
		return err
	}

	game, err := that.currentGame(ctx)
	if err != nil {
		return err
	}

	return that.submit(ctx, game, path)
}

func (that *Shell) submit(ctx context.Context, game *entity.Game, path []coord.Coordinate) error {
	team := game.Turn

	updated, err := that.uGame.MakeTurn(ctx, game.ID, team, path)
	if err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			that.printf("game is over: %s\n", that.outcome(updated))
			return nil
		}

		return err
	}

	that.printf("%s played %s\n", that.teamName(team), coord.PathString(path))

	if updated.IsFinished() {
		that.printf("game over: %s\n", that.outcome(updated))
	}

	return that.render(updated)
}

func (that *Shell) handleBack(ctx context.Context, _ []string) error {
	if len(that.selected) > 0 {
		that.selected = that.selected[:len(that.selected)-1]
	}

	return that.handleShow(ctx, nil)
}

func (that *Shell) handleReset(ctx context.Context, _ []string) error {
	that.selected = nil

	return that.handleShow(ctx, nil)
}

func (that *Shell) handleUndo(ctx context.Context, _ []string) error {
	if that.gameID == "" {
		return errNoGame
	}

	game, move, err := that.uGame.Undo(ctx, that.gameID)
	if err != nil {
		return err
	}

	that.selected = nil
	that.printf("undid %s at %s\n", that.teamName(move.Team), coord.PathString(move.Path))

	return that.render(game)
}

func (that *Shell) handleShow(ctx context.Context, _ []string) error {
	game, err := that.currentGame(ctx)
	if err != nil {
		return err
	}

	return that.render(game)
}

func (that *Shell) handleHelp(_ context.Context, _ []string) error {
	that.printf("%s", helpText)

	return nil
}

func (that *Shell) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

func (that *Shell) outcome(game *entity.Game) string {
	if game == nil {
		return "finished"
	}

	switch {
	case game.Winner != nil:
		return that.teamName(*game.Winner) + " wins"
	case game.Status == entity.StatusDrawn:
		return "draw"
	default:
		return game.Status
	}
}
