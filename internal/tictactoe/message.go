package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const drawMessage = "Draw"

// GameOverMessage - formats a terminal state for display.
func GameOverMessage(state entity.GameState) (string, error) {
	switch state.Outcome {
	case entity.OutcomeWin:
		return state.Winner.String() + " wins!", nil
	case entity.OutcomeDraw:
		return drawMessage, nil
	case entity.OutcomeInProgress:
		return "", apperror.ErrNotTerminal
	default:
		return "", fmt.Errorf("%w: unknown outcome %d", apperror.ErrNotTerminal, state.Outcome)
	}
}

// GameOverMessageFor names the winner by seat ("Player 1 wins!") instead of symbol.
func GameOverMessageFor(game *Game, state entity.GameState) (string, error) {
	if !state.IsWin() {
		return GameOverMessage(state)
	}

	switch state.Winner {
	case game.player1:
		return "Player 1 wins!", nil
	case game.player2:
		return "Player 2 wins!", nil
	default:
		return GameOverMessage(state)
	}
}
