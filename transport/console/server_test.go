package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// firstCellBot always takes the first empty cell in row-major order.
type firstCellBot struct{}

func (firstCellBot) MakeTurn(_ context.Context, game *tictactoe.Game) (entity.Move, entity.GameState, error) {
	move := game.Snapshot().EmptyCells()[0]
	state, err := game.ApplyMove(move.Row, move.Col, game.Turn())

	return move, state, err
}

func newServer(t *testing.T, human entity.Symbol, input string) (*Server, *bytes.Buffer, *tictactoe.Game) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	game, err := tictactoe.NewGame(entity.PlayerX, entity.PlayerO)
	require.NoError(t, err)

	manager, err := usecase.NewGameManager(logger, game, firstCellBot{}, human)
	require.NoError(t, err)

	out := &bytes.Buffer{}

	return New(logger, manager, strings.NewReader(input), out), out, game
}

func TestServer_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Human wins on the diagonal", func(t *testing.T) {
		// Given: the bot fills the top row after each human move
		server, out, game := newServer(t, entity.PlayerX, "0 0\n1 1\nmove 2 2\n")

		// When: the session runs
		err := server.Run(ctx)

		// Then: X completes the diagonal before O completes the top row
		require.NoError(t, err)
		assert.Equal(t, entity.Win(entity.PlayerX), game.State())
		assert.Contains(t, out.String(), "bot plays (0, 1)")
		assert.Contains(t, out.String(), "bot plays (0, 2)")
		assert.True(t, strings.HasSuffix(out.String(), "X wins!\n"))
	})

	t.Run("Bad input is reported and the game goes on", func(t *testing.T) {
		server, out, game := newServer(t, entity.PlayerX, "abc def\n0 0\n0 0\n7\nboard\nquit\n0 2\n")

		err := server.Run(ctx)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `bad row "abc"`)
		assert.Contains(t, out.String(), "cell is already occupied")
		assert.Contains(t, out.String(), `unknown command "7"`)
		assert.Contains(t, out.String(), "bye")
		assert.Len(t, game.History(), 2)
	})

	t.Run("Bot opens when the human plays second", func(t *testing.T) {
		server, out, game := newServer(t, entity.PlayerO, "")

		err := server.Run(ctx)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "You play O on a 3x3 board.")
		assert.Contains(t, out.String(), "bot plays (0, 0)")
		assert.Equal(t, []entity.Move{{Row: 0, Col: 0}}, game.History())
	})

	t.Run("Cancelled context stops the session", func(t *testing.T) {
		server, out, game := newServer(t, entity.PlayerX, "0 0\n")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := server.Run(cancelled)

		require.NoError(t, err)
		assert.Empty(t, game.History())
		assert.NotContains(t, out.String(), "> ")
	})
}

func TestParseMove(t *testing.T) {
	row, col, err := parseMove([]string{"2", "1"})
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	_, _, err = parseMove([]string{"2"})
	require.ErrorIs(t, err, ErrBadMove)

	_, _, err = parseMove([]string{"2", "x"})
	require.ErrorIs(t, err, ErrBadMove)
}
