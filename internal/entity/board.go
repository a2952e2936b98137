package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const MinDimension = 3

// Board is a square grid of cells stored row by row.
// Its dimension is fixed at construction.
type Board struct {
	dimension int
	cells     []Symbol
}

func NewBoard(dimension int) (*Board, error) {
	if dimension < MinDimension {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidDimension, dimension)
	}

	return &Board{
		dimension: dimension,
		cells:     make([]Symbol, dimension*dimension),
	}, nil
}

func (that *Board) Dimension() int {
	return that.dimension
}

func (that *Board) Get(row, col int) (Symbol, error) {
	if !that.InBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that.cells[that.index(row, col)], nil
}

// Set - places a symbol on an empty cell. The board is left untouched on error.
func (that *Board) Set(row, col int, symbol Symbol) error {
	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	if symbol.IsBlank() {
		return apperror.ErrBlankSymbol
	}

	idx := that.index(row, col)
	if that.cells[idx] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = symbol

	return nil
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.dimension && col >= 0 && col < that.dimension
}

// At returns the cell at an in-bounds position without checking.
func (that *Board) At(row, col int) Symbol {
	return that.cells[that.index(row, col)]
}

func (that *Board) Clone() *Board {
	cells := make([]Symbol, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		dimension: that.dimension,
		cells:     cells,
	}
}

// Occupied returns the number of non-empty cells.
func (that *Board) Occupied() int {
	count := 0
	for _, cell := range that.cells {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells lists the empty cells by ascending row, then ascending column.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(that.cells))
	for i, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, Move{Row: i / that.dimension, Col: i % that.dimension})
		}
	}

	return moves
}

// Key returns a stable fingerprint of the board contents.
// Empty cells are written as '.', and '.' or '\' symbols are escaped with '\'.
func (that *Board) Key() string {
	var sb strings.Builder

	sb.WriteString(strconv.Itoa(that.dimension))
	sb.WriteByte(':')

	for _, cell := range that.cells {
		switch cell {
		case EmptyCell:
			sb.WriteByte('.')
		case '.', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(rune(cell))
		default:
			sb.WriteRune(rune(cell))
		}
	}

	return sb.String()
}

// String renders the grid one row per line, '.' for empty cells.
func (that *Board) String() string {
	var sb strings.Builder

	for row := range that.dimension {
		for col := range that.dimension {
			if col > 0 {
				sb.WriteByte(' ')
			}

			cell := that.At(row, col)
			if cell == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(rune(cell))
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (that *Board) index(row, col int) int {
	return row*that.dimension + col
}
