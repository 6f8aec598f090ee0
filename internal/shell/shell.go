// Package shell is a line-oriented front end that navigates the board and submits moves.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/fractal-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/board"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/coord"
	"github.com/rocketscienceinc/fractal-tictactoe/internal/entity"
)

var (
	errNoGame = errors.New("no game, start one with \"new\"")
	errQuit   = errors.New("quit")
)

type uGame interface {
	CreateGame(ctx context.Context, rank uint8) (*entity.Game, error)
	CreateDefaultGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, team board.TeamID, path []coord.Coordinate) (*entity.Game, error)
	Undo(ctx context.Context, gameID string) (*entity.Game, board.Move, error)
}

type handler func(ctx context.Context, args []string) error

type Shell struct {
	logger *slog.Logger
	uGame  uGame
	teams  map[board.TeamID]entity.Team
	out    io.Writer

	gameID   string
	selected []coord.Coordinate

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, teams map[board.TeamID]entity.Team, out io.Writer) *Shell {
	shell := &Shell{
		logger: logger.With("component", "shell"),
		uGame:  uGame,
		teams:  teams,
		out:    out,

		handlers: make(map[string]handler),
	}

	shell.handlers["new"] = shell.handleNew
	shell.handlers["open"] = shell.handleOpen
	shell.handlers["select"] = shell.handleSelect
	shell.handlers["s"] = shell.handleSelect
	shell.handlers["play"] = shell.handlePlay
	shell.handlers["back"] = shell.handleBack
	shell.handlers["reset"] = shell.handleReset
	shell.handlers["undo"] = shell.handleUndo
	shell.handlers["show"] = shell.handleShow
	shell.handlers["help"] = shell.handleHelp
	shell.handlers["quit"] = shell.handleQuit

	return shell
}

// Run - reads commands until input ends, "quit" is entered or ctx is cancelled.
// Illegal commands are reported and the loop goes on.
func (that *Shell) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := readLines(readCtx, in)

	for {
		if ctx.Err() != nil {
			return nil
		}

		that.prompt()

		var line string
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read command: %w", err)
				}

				return nil
			}
			line = next
		}

		err := that.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			log.Debug("command failed", "error", err)
			that.printf("error: %v\n", err)
		}
	}
}

// readLines - scans in on its own goroutine until in is exhausted or ctx is done.
// A read that is blocked in the reader ends only when the reader returns.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errCh <- nil
				return
			}
		}

		errCh <- scanner.Err()
	}()

	return lines, errCh
}

// Execute - runs a single command line.
func (that *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	h, ok := that.handlers[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, fields[0])
	}

	return h(ctx, fields[1:])
}

func (that *Shell) prompt() {
	if that.gameID == "" {
		that.printf("> ")
		return
	}

	that.printf("[%s] > ", coord.PathString(that.selected))
}

func (that *Shell) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Shell) currentGame(ctx context.Context) (*entity.Game, error) {
	if that.gameID == "" {
		return nil, errNoGame
	}

	game, err := that.uGame.GetGame(ctx, that.gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	return game, nil
}

func (that *Shell) teamName(team board.TeamID) string {
	if t, ok := that.teams[team]; ok && t.Name != "" {
		return t.Name
	}

	return fmt.Sprintf("team %d", team)
}
