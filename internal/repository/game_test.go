package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/fractal-tictactoe/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(id, 1, board.StandardShape(), entity.Rules{AllowReclaim: true})
	require.NoError(t, err)

	for i, s := range []string{"0,0/0,0", "1,1/1,1", "0,0/0,1"} {
		path, err := coord.ParsePath(s)
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(board.TeamID(i%2), path))
	}

	return game
}

func newRedisRepository(t *testing.T) (context.Context, GameRepository) {
	t.Helper()

	ctx, st := suite.New(t)

	return ctx, NewGameRepository(st.Storage, 0)
}

func TestStorage_New(t *testing.T) {
	ctx, st := suite.New(t)

	// When: connecting to the running redis
	client, err := storage.New(ctx, st.RedisAddr)

	// Then: the connection is usable
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, gameRepo := newRedisRepository(t)

	// Given: a game with a few moves
	game := playedGame(t, "123")

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned, and game is stored
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRedisRepository(t)

		// Given: a stored game
		game := playedGame(t, "123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game is the saved game rebuilt from its moves
		require.NoError(t, err)
		assertSameGame(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRedisRepository(t)

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_TTL(t *testing.T) {
	ctx, st := suite.New(t)
	gameRepo := NewGameRepository(st.Storage, time.Hour)

	// When: a game is stored with a ttl
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, playedGame(t, "ttl")))

	// Then: the key expires
	ttl, err := st.Storage.TTL(ctx, gameKeyPrefix+"ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRedisRepository(t)

		// Given: a stored game
		game := playedGame(t, "123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRedisRepository(t)

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func assertSameGame(t *testing.T, want, got *entity.Game) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Rules, got.Rules)
	assert.Equal(t, want.Turn, got.Turn)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.Board.Rank(), got.Board.Rank())
	assert.Equal(t, want.Board.Shape(), got.Board.Shape())
	assert.Equal(t, want.Board.Moves(), got.Board.Moves())
	assert.Equal(t, want.Board.Root().State(), got.Board.Root().State())

	for _, sub := range want.Board.Root().Children() {
		other, ok := got.Board.Root().Child(sub.Pos())
		require.True(t, ok)
		assert.Equal(t, sub.State(), other.State(), sub.Pos().String())
	}
}
