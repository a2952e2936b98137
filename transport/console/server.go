package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrBadMove = errors.New("expected a move as <row> <col>")

type uGame interface {
	Game() *tictactoe.Game
	HumanMark() entity.Symbol

	Start(ctx context.Context) (*usecase.TurnResult, error)
	MakeTurn(ctx context.Context, row, col int) (*usecase.TurnResult, error)
}

// handler returns true when the session is over.
type handler func(ctx context.Context, args []string) (bool, error)

type Server struct {
	logger *slog.Logger
	uGame  uGame

	in  *bufio.Scanner
	out io.Writer

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		in:     bufio.NewScanner(in),
		out:    out,

		handlers: make(map[string]handler),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["board"] = server.handleBoard
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Run - plays one game over the console until it ends, the input is exhausted
// or the player quits.
func (that *Server) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	result, err := that.uGame.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.printf("You play %s on a %dx%d board. Type \"help\" for commands.\n",
		that.uGame.HumanMark(), that.uGame.Game().Dimensions(), that.uGame.Game().Dimensions())

	if that.report(result) {
		return nil
	}

	for {
		if err = ctx.Err(); err != nil {
			return nil
		}

		that.printf("%s> ", that.uGame.HumanMark())

		if !that.in.Scan() {
			if err = that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			log.Info("input closed")
			return nil
		}

		done, err := that.handleLine(ctx, that.in.Text())
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

// handleLine - dispatches a command; a bare "<row> <col>" is a move.
func (that *Server) handleLine(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	if h, ok := that.handlers[fields[0]]; ok {
		return h(ctx, fields[1:])
	}

	if len(fields) == 2 {
		return that.handleMove(ctx, fields)
	}

	that.printf("unknown command %q\n", fields[0])

	return false, nil
}

func (that *Server) handleMove(ctx context.Context, args []string) (bool, error) {
	log := that.logger.With("method", "handleMove")

	row, col, err := parseMove(args)
	if err != nil {
		that.printf("%v\n", err)
		return false, nil
	}

	result, err := that.uGame.MakeTurn(ctx, row, col)
	if err != nil {
		log.Debug("move rejected", "row", row, "col", col, "error", err)
		that.printf("error: %v\n", err)
		that.render()

		return false, nil
	}

	return that.report(result), nil
}

func (that *Server) handleBoard(_ context.Context, _ []string) (bool, error) {
	that.render()
	return false, nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) (bool, error) {
	that.printf("commands:\n  <row> <col>      place your mark (zero-based)\n  move <row> <col> same as above\n  board            show the board\n  quit             leave the game\n")
	return false, nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) (bool, error) {
	that.printf("bye\n")
	return true, nil
}

// report - prints the bot reply and the board, and the result once the game is over.
func (that *Server) report(result *usecase.TurnResult) bool {
	if result.Bot != nil {
		that.printf("bot plays %s\n", result.Bot)
	}

	that.render()

	if !result.State.IsTerminal() {
		return false
	}

	that.printf("%s\n", result.Message)

	return true
}

func (that *Server) render() {
	that.printf("%s", that.uGame.Game().Snapshot())
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func parseMove(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, ErrBadMove
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad row %q", ErrBadMove, args[0])
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad col %q", ErrBadMove, args[1])
	}

	return row, col, nil
}
