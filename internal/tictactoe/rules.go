package tictactoe

import (
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	linesMu    sync.Mutex
	linesCache = make(map[int][][]entity.Move)
)

// Lines returns every winning line of a board: rows top to bottom, columns left
// to right, the main diagonal, then the anti-diagonal. The result is shared and
// must not be modified.
func Lines(dimension int) [][]entity.Move {
	linesMu.Lock()
	defer linesMu.Unlock()

	if lines, ok := linesCache[dimension]; ok {
		return lines
	}

	lines := make([][]entity.Move, 0, 2*dimension+2)

	for row := range dimension {
		line := make([]entity.Move, 0, dimension)
		for col := range dimension {
			line = append(line, entity.Move{Row: row, Col: col})
		}
		lines = append(lines, line)
	}

	for col := range dimension {
		line := make([]entity.Move, 0, dimension)
		for row := range dimension {
			line = append(line, entity.Move{Row: row, Col: col})
		}
		lines = append(lines, line)
	}

	diagonal := make([]entity.Move, 0, dimension)
	antiDiagonal := make([]entity.Move, 0, dimension)
	for idx := range dimension {
		diagonal = append(diagonal, entity.Move{Row: idx, Col: idx})
		antiDiagonal = append(antiDiagonal, entity.Move{Row: idx, Col: dimension - idx - 1})
	}
	lines = append(lines, diagonal, antiDiagonal)

	linesCache[dimension] = lines

	return lines
}

// Evaluate - derives the game state from the board alone.
func Evaluate(board *entity.Board) entity.GameState {
	for _, line := range Lines(board.Dimension()) {
		if winner := lineOwner(board, line); winner != entity.EmptyCell {
			return entity.Win(winner)
		}
	}

	// the game will continue until all the squares are full
	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// WinningLine returns the cells of the first complete line found, in the same
// scan order Evaluate uses.
func WinningLine(board *entity.Board) ([]entity.Move, bool) {
	for _, line := range Lines(board.Dimension()) {
		if lineOwner(board, line) != entity.EmptyCell {
			return slices.Clone(line), true
		}
	}

	return nil, false
}

// IsTerminal reports whether the state ends the game.
func IsTerminal(state entity.GameState) bool {
	return state.IsTerminal()
}

// lineOwner returns the symbol filling the whole line, or EmptyCell.
func lineOwner(board *entity.Board, line []entity.Move) entity.Symbol {
	first := board.At(line[0].Row, line[0].Col)
	if first == entity.EmptyCell {
		return entity.EmptyCell
	}

	for _, cell := range line[1:] {
		if board.At(cell.Row, cell.Col) != first {
			return entity.EmptyCell
		}
	}

	return first
}
