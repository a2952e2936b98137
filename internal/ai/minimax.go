package ai

import (
	"math"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// search is the working state of one BestMove or Scores call. It owns a private
// copy of the cells and places and removes symbols on it while recursing.
type search struct {
	dimension int
	cells     []entity.Symbol
	empty     int
	lines     [][]int

	mover    entity.Symbol
	opponent entity.Symbol

	base     int
	maxDepth int
	pruning  bool
	table    transpositionTable

	stats Stats
}

func newSearch(board *entity.Board, mover, opponent entity.Symbol, opts Options) *search {
	dimension := board.Dimension()

	cells := make([]entity.Symbol, 0, dimension*dimension)
	for row := range dimension {
		for col := range dimension {
			cells = append(cells, board.At(row, col))
		}
	}

	lines := make([][]int, 0, 2*dimension+2)
	for _, line := range tictactoe.Lines(dimension) {
		indexes := make([]int, 0, len(line))
		for _, cell := range line {
			indexes = append(indexes, cell.Row*dimension+cell.Col)
		}
		lines = append(lines, indexes)
	}

	s := &search{
		dimension: dimension,
		cells:     cells,
		empty:     len(board.EmptyCells()),
		lines:     lines,
		mover:     mover,
		opponent:  opponent,
		base:      scoreBase(dimension),
		maxDepth:  opts.MaxDepth,
		pruning:   opts.Pruning,
	}

	if s.pruning {
		s.table = make(transpositionTable)
	}

	return s
}

// scoreBase exceeds both the deepest possible ply and the largest heuristic
// value, so any win outranks any heuristic estimate and faster wins score higher.
func scoreBase(dimension int) int {
	area := dimension * dimension
	return maxHeuristic(dimension) + area + 1
}

// bestMove returns the first root move with the highest score.
func (that *search) bestMove() (entity.Move, int, bool) {
	best, bestIdx := math.MinInt, -1
	alpha, beta := math.MinInt, math.MaxInt

	for idx := range that.cells {
		if that.cells[idx] != entity.EmptyCell {
			continue
		}

		score := that.play(idx, that.mover, alpha, beta)
		if score > best {
			best, bestIdx = score, idx
		}

		if that.pruning {
			alpha = max(alpha, best)
		}
	}

	if bestIdx < 0 {
		return entity.Move{}, 0, false
	}

	return that.move(bestIdx), best, true
}

// scores returns the exact value of every legal root move.
func (that *search) scores() []ScoredMove {
	result := make([]ScoredMove, 0, that.empty)

	for idx := range that.cells {
		if that.cells[idx] != entity.EmptyCell {
			continue
		}

		score := that.play(idx, that.mover, math.MinInt, math.MaxInt)
		result = append(result, ScoredMove{Move: that.move(idx), Score: score})
	}

	return result
}

// play places symbol at idx, searches the reply, and undoes the placement.
func (that *search) play(idx int, symbol entity.Symbol, alpha, beta int) int {
	that.cells[idx] = symbol
	that.empty--

	score := that.minimax(1, alpha, beta, symbol != that.mover)

	that.cells[idx] = entity.EmptyCell
	that.empty++

	return score
}

func (that *search) minimax(depth, alpha, beta int, maximizing bool) int {
	that.stats.Nodes++

	if winner := that.winner(); winner != entity.EmptyCell {
		if winner == that.mover {
			return that.base - depth
		}
		return -(that.base - depth)
	}

	if that.empty == 0 {
		return 0
	}

	if that.maxDepth > 0 && depth >= that.maxDepth {
		return that.heuristic()
	}

	var key string
	if that.pruning {
		key = that.key()
		if score, ok := that.table.lookup(key, alpha, beta); ok {
			that.stats.TableHits++
			return score
		}
	}

	alphaOrig, betaOrig := alpha, beta

	symbol := that.opponent
	best := math.MaxInt
	if maximizing {
		symbol = that.mover
		best = math.MinInt
	}

	for idx := range that.cells {
		if that.cells[idx] != entity.EmptyCell {
			continue
		}

		that.cells[idx] = symbol
		that.empty--
		score := that.minimax(depth+1, alpha, beta, !maximizing)
		that.cells[idx] = entity.EmptyCell
		that.empty++

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if that.pruning && alpha >= beta {
			that.stats.Cutoffs++
			break
		}
	}

	if that.pruning {
		that.table.store(key, best, alphaOrig, betaOrig)
	}

	return best
}

// winner returns the owner of the first complete line, or EmptyCell.
func (that *search) winner() entity.Symbol {
	for _, line := range that.lines {
		first := that.cells[line[0]]
		if first == entity.EmptyCell {
			continue
		}

		owned := true
		for _, idx := range line[1:] {
			if that.cells[idx] != first {
				owned = false
				break
			}
		}

		if owned {
			return first
		}
	}

	return entity.EmptyCell
}

func (that *search) key() string {
	var sb strings.Builder
	sb.Grow(len(that.cells))

	for _, cell := range that.cells {
		sb.WriteRune(rune(cell))
	}

	return sb.String()
}

func (that *search) move(idx int) entity.Move {
	return entity.Move{Row: idx / that.dimension, Col: idx % that.dimension}
}
