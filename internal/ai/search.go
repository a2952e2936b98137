// Package ai picks moves for a tic-tac-toe game with minimax search.
//
// Terminal positions score base-depth for a mover win, -(base-depth) for an
// opponent win and 0 for a draw, so the search prefers the fastest win and the
// slowest loss. Candidate moves are tried by ascending row, then column, and
// ties keep the earliest candidate, which makes the result deterministic.
package ai

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Options struct {
	// Pruning enables alpha-beta cutoffs and a per-search transposition table.
	// It changes only the time taken, never the chosen move.
	Pruning bool
	// MaxDepth stops the search after that many plies and scores the frontier
	// heuristically. The result is an approximation of perfect play.
	// Zero searches to the end of the game.
	MaxDepth int
}

func DefaultOptions() Options {
	return Options{Pruning: true}
}

// Exhaustive reports whether the options give perfect play.
func (that Options) Exhaustive() bool {
	return that.MaxDepth <= 0
}

type ScoredMove struct {
	Move  entity.Move `json:"move"`
	Score int         `json:"score"`
}

// Stats describes the work done by the most recent search.
type Stats struct {
	Nodes     int
	TableHits int
	Cutoffs   int
}

// Searcher is safe for concurrent use; each call searches its own board copy.
type Searcher struct {
	opts Options

	mu   sync.Mutex
	last Stats
}

func NewSearcher(opts Options) *Searcher {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}

	return &Searcher{opts: opts}
}

func (that *Searcher) Options() Options {
	return that.opts
}

// BestMove - returns the move that is best for mover against an optimal opponent.
// The game is never modified.
func (that *Searcher) BestMove(game *tictactoe.Game, mover, opponent entity.Symbol) (entity.Move, error) {
	s, err := that.prepare(game, mover, opponent)
	if err != nil {
		return entity.Move{}, err
	}

	move, _, ok := s.bestMove()
	that.setStats(s.stats)

	if !ok {
		return entity.Move{}, apperror.ErrNoMovesLeft
	}

	return move, nil
}

// Scores returns the minimax value of every legal move for mover, in
// enumeration order.
func (that *Searcher) Scores(game *tictactoe.Game, mover, opponent entity.Symbol) ([]ScoredMove, error) {
	s, err := that.prepare(game, mover, opponent)
	if err != nil {
		return nil, err
	}

	scores := s.scores()
	that.setStats(s.stats)

	return scores, nil
}

func (that *Searcher) LastStats() Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.last
}

func (that *Searcher) prepare(game *tictactoe.Game, mover, opponent entity.Symbol) (*search, error) {
	if game.State().IsTerminal() {
		return nil, apperror.ErrGameOver
	}

	if err := validatePair(game, mover, opponent); err != nil {
		return nil, err
	}

	return newSearch(game.Snapshot(), mover, opponent, that.opts), nil
}

func (that *Searcher) setStats(stats Stats) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.last = stats
}

func validatePair(game *tictactoe.Game, mover, opponent entity.Symbol) error {
	if mover.IsBlank() || opponent.IsBlank() {
		return apperror.ErrBlankSymbol
	}

	if mover == opponent {
		return fmt.Errorf("%w: %s", apperror.ErrDuplicateSymbol, mover)
	}

	if !game.IsPlayer(mover) || !game.IsPlayer(opponent) {
		return fmt.Errorf("%w: %s vs %s", apperror.ErrUnknownSymbol, mover, opponent)
	}

	return nil
}

var defaultSearcher = NewSearcher(DefaultOptions())

// BestMove searches exhaustively with pruning.
func BestMove(game *tictactoe.Game, mover, opponent entity.Symbol) (entity.Move, error) {
	return defaultSearcher.BestMove(game, mover, opponent)
}
