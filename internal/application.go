package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/config"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/shell"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/usecase"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	settings, err := gameSettings(conf)
	if err != nil {
		return err
	}

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameUseCase := usecase.NewGameManager(logger, gameRepo, settings)
	sh := shell.New(logger, gameUseCase, teams(conf), os.Stdout)

	log.Info("Starting shell", "storage", conf.Storage, "rank", settings.Rank)

	if err = sh.Run(ctx, os.Stdin); err != nil {
		return fmt.Errorf("shell error: %w", err)
	}

	log.Info("Shell closed, shutting down")

	return nil
}

func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	switch conf.Storage {
	case config.StorageMemory, "":
		return repository.NewMemoryGameRepository(), func() {}, nil
	case config.StorageRedis:
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage, conf.Redis.GameTTL), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}

func gameSettings(conf *config.Config) (usecase.GameSettings, error) {
	shape := board.Shape{
		Side: conf.Board.Side,
		Dims: conf.Board.Dims,
		Line: conf.Board.Line,
	}

	if err := shape.Validate(); err != nil {
		return usecase.GameSettings{}, fmt.Errorf("bad board config: %w", err)
	}

	return usecase.GameSettings{
		Rank:  conf.Board.Rank,
		Shape: shape,
		Rules: entity.Rules{AllowReclaim: !conf.Rules.NoReclaim},
	}, nil
}

// teams - configured names override the defaults in order, X first.
func teams(conf *config.Config) map[board.TeamID]entity.Team {
	result := entity.DefaultTeams()

	for i, team := range conf.Teams {
		id := board.TeamID(i)
		if _, ok := result[id]; !ok {
			break
		}

		if team.Name != "" {
			result[id] = entity.Team{ID: id, Name: team.Name, Color: team.Color}
		}
	}

	return result
}
