package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type bot interface {
	MakeTurn(ctx context.Context, game *tictactoe.Game) (entity.Move, entity.GameState, error)
}

// TurnResult describes what happened during one call to the manager.
type TurnResult struct {
	Human   *entity.Move
	Bot     *entity.Move
	State   entity.GameState
	Message string
}

// GameManager drives a single human-versus-bot game.
type GameManager struct {
	logger *slog.Logger
	game   *tictactoe.Game
	bot    bot

	humanMark entity.Symbol
	botMark   entity.Symbol

	seatMessages bool
}

func NewGameManager(logger *slog.Logger, game *tictactoe.Game, bot bot, humanMark entity.Symbol) (*GameManager, error) {
	botMark := game.Opponent(humanMark)
	if botMark == entity.EmptyCell {
		return nil, fmt.Errorf("%w: human plays %q", apperror.ErrUnknownSymbol, humanMark.String())
	}

	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		game:      game,
		bot:       bot,
		humanMark: humanMark,
		botMark:   botMark,
	}, nil
}

// UseSeatMessages - names the winner by seat ("Player 1 wins!") instead of by symbol.
func (that *GameManager) UseSeatMessages(enabled bool) {
	that.seatMessages = enabled
}

func (that *GameManager) Game() *tictactoe.Game {
	return that.game
}

func (that *GameManager) HumanMark() entity.Symbol {
	return that.humanMark
}

// Start - lets the bot open the game when it holds the first symbol.
func (that *GameManager) Start(ctx context.Context) (*TurnResult, error) {
	result := &TurnResult{State: that.game.State()}

	if result.State.IsTerminal() || that.game.Turn() != that.botMark {
		return result, nil
	}

	if err := that.botTurn(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// MakeTurn - applies the human move and, if the game goes on, the bot's reply.
// When the bot fails the returned result still holds the applied human move.
func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (*TurnResult, error) {
	log := that.logger.With("method", "MakeTurn")

	state, err := that.game.ApplyMove(row, col, that.humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	result := &TurnResult{
		Human: &entity.Move{Row: row, Col: col},
		State: state,
	}

	log.Debug("human moved", "move", result.Human.String(), "state", state.String())

	if state.IsTerminal() {
		that.finish(result)
		return result, nil
	}

	if err = that.botTurn(ctx, result); err != nil {
		return result, err
	}

	return result, nil
}

func (that *GameManager) botTurn(ctx context.Context, result *TurnResult) error {
	move, state, err := that.bot.MakeTurn(ctx, that.game)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	result.Bot = &move
	result.State = state

	that.logger.Debug("bot moved", "move", move.String(), "state", state.String())

	if state.IsTerminal() {
		that.finish(result)
	}

	return nil
}

func (that *GameManager) finish(result *TurnResult) {
	format := tictactoe.GameOverMessage
	if that.seatMessages {
		format = func(state entity.GameState) (string, error) {
			return tictactoe.GameOverMessageFor(that.game, state)
		}
	}

	msg, err := format(result.State)
	if err != nil {
		that.logger.Error("failed to format game over message", "error", err)
		return
	}

	result.Message = msg
	that.logger.Info("game finished", "result", msg, "moves", len(that.game.History()))
}
