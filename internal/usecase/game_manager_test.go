package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/ai"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errSearchFailed = errors.New("search failed")

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(ctx context.Context, game *tictactoe.Game) (entity.Move, entity.GameState, error) {
	args := that.Called(ctx, game)

	if fn, ok := args.Get(0).(func(context.Context, *tictactoe.Game) (entity.Move, entity.GameState, error)); ok {
		return fn(ctx, game)
	}

	return args.Get(0).(entity.Move), args.Get(1).(entity.GameState), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGame(t *testing.T) *tictactoe.Game {
	t.Helper()

	game, err := tictactoe.NewGame(entity.PlayerX, entity.PlayerO)
	require.NoError(t, err)

	return game
}

// botPlays makes the mocked bot apply move for whichever symbol is due.
func botPlays(bot *mockBot, game *tictactoe.Game, move entity.Move) {
	bot.On("MakeTurn", mock.Anything, game).
		Return(func(_ context.Context, g *tictactoe.Game) (entity.Move, entity.GameState, error) {
			state, err := g.ApplyMove(move.Row, move.Col, g.Turn())
			return move, state, err
		}).
		Once()
}

func TestNewGameManager(t *testing.T) {
	t.Run("Human plays one of the game symbols", func(t *testing.T) {
		manager, err := NewGameManager(discardLogger(), newGame(t), &mockBot{}, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, manager.HumanMark())
	})

	t.Run("Unknown human symbol", func(t *testing.T) {
		_, err := NewGameManager(discardLogger(), newGame(t), &mockBot{}, 'Z')

		require.ErrorIs(t, err, apperror.ErrUnknownSymbol)
	})
}

func TestGameManager_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot opens when it plays first", func(t *testing.T) {
		// Given: the human plays O
		game := newGame(t)
		bot := &mockBot{}
		botPlays(bot, game, entity.Move{Row: 0, Col: 0})

		manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerO)
		require.NoError(t, err)

		// When: the game starts
		result, err := manager.Start(ctx)

		// Then: the bot has made the first move
		require.NoError(t, err)
		require.NotNil(t, result.Bot)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, *result.Bot)
		assert.Nil(t, result.Human)
		assert.Equal(t, entity.PlayerO, game.Turn())
		bot.AssertExpectations(t)
	})

	t.Run("Human opens when they play first", func(t *testing.T) {
		bot := &mockBot{}
		manager, err := NewGameManager(discardLogger(), newGame(t), bot, entity.PlayerX)
		require.NoError(t, err)

		result, err := manager.Start(ctx)

		require.NoError(t, err)
		assert.Nil(t, result.Bot)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Human move is followed by the bot", func(t *testing.T) {
		// Given: a new game where the human plays X
		game := newGame(t)
		bot := &mockBot{}
		botPlays(bot, game, entity.Move{Row: 1, Col: 1})

		manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerX)
		require.NoError(t, err)

		// When: the human takes a corner
		result, err := manager.MakeTurn(ctx, 0, 0)

		// Then: both moves are reported and the game goes on
		require.NoError(t, err)
		assert.Equal(t, &entity.Move{Row: 0, Col: 0}, result.Human)
		assert.Equal(t, &entity.Move{Row: 1, Col: 1}, result.Bot)
		assert.Equal(t, entity.InProgress(), result.State)
		assert.Empty(t, result.Message)
		assert.Len(t, game.History(), 2)
	})

	t.Run("Invalid human move leaves the game untouched", func(t *testing.T) {
		// Given: the centre is taken
		game := newGame(t)
		bot := &mockBot{}
		botPlays(bot, game, entity.Move{Row: 1, Col: 1})

		manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerX)
		require.NoError(t, err)
		_, err = manager.MakeTurn(ctx, 0, 0)
		require.NoError(t, err)

		// When: the human plays the centre
		result, err := manager.MakeTurn(ctx, 1, 1)

		// Then: ErrCellOccupied is returned and the bot is not asked to move
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Nil(t, result)
		assert.Len(t, game.History(), 2)
		bot.AssertNumberOfCalls(t, "MakeTurn", 1)
	})

	t.Run("Winning human move ends the game", func(t *testing.T) {
		// Given: X needs (0, 2) to complete the top row
		game := newGame(t)
		for _, move := range []entity.Move{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 2, Col: 2}} {
			_, err := game.ApplyMove(move.Row, move.Col, game.Turn())
			require.NoError(t, err)
		}

		bot := &mockBot{}
		manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerX)
		require.NoError(t, err)

		// When: the human completes it
		result, err := manager.MakeTurn(ctx, 0, 2)

		// Then: the game is won without a bot move
		require.NoError(t, err)
		assert.Equal(t, entity.Win(entity.PlayerX), result.State)
		assert.Equal(t, "X wins!", result.Message)
		assert.Nil(t, result.Bot)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)

		// And: further moves are refused
		_, err = manager.MakeTurn(ctx, 2, 0)
		require.ErrorIs(t, err, apperror.ErrGameOver)
	})

	t.Run("Bot failure is reported", func(t *testing.T) {
		game := newGame(t)
		bot := &mockBot{}
		bot.On("MakeTurn", mock.Anything, game).Return(entity.Move{}, entity.InProgress(), errSearchFailed).Once()

		manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerX)
		require.NoError(t, err)

		// When: the human move is applied but the bot fails to answer
		result, err := manager.MakeTurn(ctx, 0, 0)

		// Then: the error is reported together with the applied human move
		require.ErrorIs(t, err, errSearchFailed)
		require.NotNil(t, result)
		assert.Equal(t, &entity.Move{Row: 0, Col: 0}, result.Human)
		assert.Nil(t, result.Bot)
		assert.Equal(t, entity.InProgress(), result.State)
		assert.Equal(t, entity.PlayerO, game.Turn())
	})

	t.Run("Seat messages name the winner by seat", func(t *testing.T) {
		// Given: the human holds the second seat and O needs (0, 2)
		game := newGame(t)
		for _, move := range []entity.Move{{Row: 1, Col: 1}, {Row: 0, Col: 0}, {Row: 2, Col: 0}, {Row: 0, Col: 1}, {Row: 2, Col: 2}} {
			_, err := game.ApplyMove(move.Row, move.Col, game.Turn())
			require.NoError(t, err)
		}

		manager, err := NewGameManager(discardLogger(), game, &mockBot{}, entity.PlayerO)
		require.NoError(t, err)
		manager.UseSeatMessages(true)

		// When: the human completes the top row
		result, err := manager.MakeTurn(ctx, 0, 2)

		// Then: the message names the second seat
		require.NoError(t, err)
		assert.Equal(t, entity.Win(entity.PlayerO), result.State)
		assert.Equal(t, "Player 2 wins!", result.Message)
	})
}

func TestGameManager_AgainstSearchBot(t *testing.T) {
	ctx := context.Background()

	// Given: a real bot playing O
	game := newGame(t)
	bot := service.NewBotService(discardLogger(), ai.NewSearcher(ai.DefaultOptions()), nil)
	manager, err := NewGameManager(discardLogger(), game, bot, entity.PlayerX)
	require.NoError(t, err)

	// When: the human plays the first empty cell every turn
	var result *TurnResult
	for !game.State().IsTerminal() {
		move := game.Snapshot().EmptyCells()[0]

		result, err = manager.MakeTurn(ctx, move.Row, move.Col)
		require.NoError(t, err)
	}

	// Then: the bot never loses
	require.NotNil(t, result)
	assert.NotEqual(t, entity.Win(entity.PlayerX), result.State)
	assert.NotEmpty(t, result.Message)
}
