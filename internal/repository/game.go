package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

const gameKeyPrefix = "game:"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// gameRecord - stored form of a game. Cell states are not stored, they are
// recomputed by replaying the moves.
type gameRecord struct {
	ID    string       `json:"id"`
	Rank  uint8        `json:"rank"`
	Shape board.Shape  `json:"shape"`
	Rules entity.Rules `json:"rules"`
	Moves []board.Move `json:"moves"`
}

func marshalGame(game *entity.Game) ([]byte, error) {
	record := gameRecord{
		ID:    game.ID,
		Rank:  game.Board.Rank(),
		Shape: game.Board.Shape(),
		Rules: game.Rules,
		Moves: game.Board.Moves(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

func unmarshalGame(data []byte) (*entity.Game, error) {
	var record gameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	game, err := entity.RestoreGame(record.ID, record.Rank, record.Shape, record.Rules, record.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", record.ID, err)
	}

	return game, nil
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - games stored in Redis; a zero ttl keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := marshalGame(game)
	if err != nil {
		return err
	}

	err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return unmarshalGame(response)
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}
