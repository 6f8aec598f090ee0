package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

// memoryGame - process-local store used when Redis is not configured.
// Games are kept encoded so callers never share a board with the store.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string][]byte),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := marshalGame(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = data

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	data, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return unmarshalGame(data)
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}
