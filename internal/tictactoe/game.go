package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultDimension = 3

// Game is a single play session. The player to move is derived from the
// number of occupied cells: symbol1 moves on even counts, symbol2 on odd ones.
type Game struct {
	board   *entity.Board
	player1 entity.Symbol
	player2 entity.Symbol
	history []entity.Move
}

func NewGame(symbol1, symbol2 entity.Symbol) (*Game, error) {
	return NewGameWithDimension(DefaultDimension, symbol1, symbol2)
}

func NewGameWithDimension(dimension int, symbol1, symbol2 entity.Symbol) (*Game, error) {
	if symbol1.IsBlank() || symbol2.IsBlank() {
		return nil, apperror.ErrBlankSymbol
	}

	if symbol1 == symbol2 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrDuplicateSymbol, symbol1)
	}

	board, err := entity.NewBoard(dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Game{
		board:   board,
		player1: symbol1,
		player2: symbol2,
	}, nil
}

func (that *Game) Dimensions() int {
	return that.board.Dimension()
}

func (that *Game) CellValue(row, col int) (entity.Symbol, error) {
	cell, err := that.board.Get(row, col)
	if err != nil {
		return entity.EmptyCell, fmt.Errorf("failed to get cell: %w", err)
	}

	return cell, nil
}

// IsValidMove - checks if a placement at (row, col) would be accepted by the board.
func (that *Game) IsValidMove(row, col int) bool {
	if that.State().IsTerminal() || !that.board.InBounds(row, col) {
		return false
	}

	return that.board.At(row, col) == entity.EmptyCell
}

// ApplyMove places symbol at (row, col) and returns the recomputed state.
// Nothing is changed when an error is returned.
func (that *Game) ApplyMove(row, col int, symbol entity.Symbol) (entity.GameState, error) {
	state := that.State()
	if state.IsTerminal() {
		return state, apperror.ErrGameOver
	}

	if err := that.validateMove(row, col, symbol); err != nil {
		return state, fmt.Errorf("invalid move: %w", err)
	}

	if err := that.board.Set(row, col, symbol); err != nil {
		return state, fmt.Errorf("invalid move: %w", err)
	}

	that.history = append(that.history, entity.Move{Row: row, Col: col})

	return that.State(), nil
}

// validateMove - checks coordinates, occupancy and turn ownership.
func (that *Game) validateMove(row, col int, symbol entity.Symbol) error {
	if !that.board.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	if that.board.At(row, col) != entity.EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	if !that.IsPlayer(symbol) {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownSymbol, symbol.String())
	}

	if turn := that.Turn(); turn != symbol {
		return fmt.Errorf("%w: %s moves next", apperror.ErrWrongTurn, turn)
	}

	return nil
}

func (that *Game) State() entity.GameState {
	return Evaluate(that.board)
}

// Turn returns the symbol that makes the next placement.
func (that *Game) Turn() entity.Symbol {
	if that.board.Occupied()%2 == 0 {
		return that.player1
	}

	return that.player2
}

func (that *Game) Players() (entity.Symbol, entity.Symbol) {
	return that.player1, that.player2
}

func (that *Game) IsPlayer(symbol entity.Symbol) bool {
	return symbol == that.player1 || symbol == that.player2
}

// Opponent returns the other configured symbol, or EmptyCell for a stranger.
func (that *Game) Opponent(symbol entity.Symbol) entity.Symbol {
	switch symbol {
	case that.player1:
		return that.player2
	case that.player2:
		return that.player1
	default:
		return entity.EmptyCell
	}
}

// Snapshot returns a copy of the board that callers may change freely.
func (that *Game) Snapshot() *entity.Board {
	return that.board.Clone()
}

// History returns the accepted moves in the order they were played.
func (that *Game) History() []entity.Move {
	return slices.Clone(that.history)
}
