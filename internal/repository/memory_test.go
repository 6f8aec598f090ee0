package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and rebuilds a game", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := playedGame(t, "abc")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: it is loaded
		got, err := gameRepo.GetByID(ctx, "abc")

		// Then: it equals the stored game
		require.NoError(t, err)
		assertSameGame(t, game, got)
	})

	t.Run("Loaded games do not share the stored board", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, playedGame(t, "abc")))

		// When: a loaded copy is played on without saving
		loaded, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		require.NoError(t, loaded.MakeTurn(loaded.Turn, []coord.Coordinate{coord.New(2, 2), coord.New(2, 2)}))

		// Then: the stored game is unchanged
		again, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Len(t, again.Board.Moves(), 3)
	})

	t.Run("Update overwrites", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := playedGame(t, "abc")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		_, err := game.Undo()
		require.NoError(t, err)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		got, err := gameRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Len(t, got.Board.Moves(), 2)
		assert.Equal(t, board.TeamID(0), got.Turn)
	})

	t.Run("Not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, playedGame(t, "abc")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "abc"))

		_, err := gameRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
