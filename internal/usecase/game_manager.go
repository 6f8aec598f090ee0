package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameSettings - what new games are created with.
type GameSettings struct {
	Rank  uint8
	Shape board.Shape
	Rules entity.Rules
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepoDep
	settings GameSettings
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepoDep, settings GameSettings) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		settings: settings,
	}
}

// CreateGame - starts a game with the configured shape and rules at the given rank.
func (that *GameManager) CreateGame(ctx context.Context, rank uint8) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), rank, that.settings.Shape, that.settings.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", game.ID, "rank", rank)

	return game, nil
}

// CreateDefaultGame - starts a game at the configured rank.
func (that *GameManager) CreateDefaultGame(ctx context.Context) (*entity.Game, error) {
	return that.CreateGame(ctx, that.settings.Rank)
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays team's move in the game and stores the result.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, team board.TeamID, path []coord.Coordinate) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(team, path); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			return game, err
		}

		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Debug("turn made", "team", team, "path", coord.PathString(path), "root", game.Board.Root().State().String())

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status)
	}

	return game, nil
}

// Undo - takes back the last move of the game.
func (that *GameManager) Undo(ctx context.Context, gameID string) (*entity.Game, board.Move, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, board.Move{}, err
	}

	move, err := game.Undo()
	if err != nil {
		return game, board.Move{}, fmt.Errorf("failed to undo: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, board.Move{}, err
	}

	that.logger.Debug("move undone", "game_id", gameID, "path", coord.PathString(move.Path))

	return game, move, nil
}

// SubBoard - the cell of the game addressed by path.
func (that *GameManager) SubBoard(ctx context.Context, gameID string, path []coord.Coordinate) (*board.Cell, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	cell, err := game.Board.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to select sub-board: %w", err)
	}

	return cell, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", gameID)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
