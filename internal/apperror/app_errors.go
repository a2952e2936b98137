package apperror

import "errors"

var (
	ErrDuplicateSymbol  = errors.New("players must use different symbols")
	ErrBlankSymbol      = errors.New("symbol must not be blank")
	ErrInvalidSymbol    = errors.New("symbol must be a single character")
	ErrInvalidDimension = errors.New("board dimension must be at least 3")

	ErrOutOfBounds = errors.New("cell is out of bounds")

	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrGameOver      = errors.New("game is already finished")
	ErrWrongTurn     = errors.New("it's not your turn")
	ErrUnknownSymbol = errors.New("symbol does not belong to this game")
	ErrNotTerminal   = errors.New("game is still in progress")

	ErrNoMovesLeft = errors.New("no available moves")
)
