package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/ai"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrStaleMove = errors.New("searched move is no longer valid")

type BotService interface {
	BestMove(ctx context.Context, game *tictactoe.Game, mover, opponent entity.Symbol) (entity.Move, error)
	MakeTurn(ctx context.Context, game *tictactoe.Game) (entity.Move, entity.GameState, error)
}

type moveCache interface {
	Get(ctx context.Context, key repository.MoveKey) (entity.Move, error)
	Set(ctx context.Context, key repository.MoveKey, move entity.Move) error
}

type botService struct {
	logger   *slog.Logger
	searcher *ai.Searcher
	cache    moveCache
}

// NewBotService - cache may be nil, in which case every move is searched.
func NewBotService(logger *slog.Logger, searcher *ai.Searcher, cache moveCache) BotService {
	log := logger.With("component", "bot")

	if opts := searcher.Options(); !opts.Exhaustive() {
		log.Warn("depth-limited search does not guarantee perfect play", "max_depth", opts.MaxDepth)
	}

	return &botService{
		logger:   log,
		searcher: searcher,
		cache:    cache,
	}
}

// BestMove - returns the searched move for mover, consulting the cache first.
func (that *botService) BestMove(ctx context.Context, game *tictactoe.Game, mover, opponent entity.Symbol) (entity.Move, error) {
	log := that.logger.With("method", "BestMove")

	key := repository.MoveKey{
		Board:    game.Snapshot().Key(),
		Mover:    mover,
		Opponent: opponent,
		MaxDepth: that.searcher.Options().MaxDepth,
	}

	if move, ok := that.cachedMove(ctx, game, key); ok {
		log.Debug("cache hit", "key", key.String(), "move", move.String())
		return move, nil
	}

	move, err := that.searcher.BestMove(game, mover, opponent)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to search move: %w", err)
	}

	stats := that.searcher.LastStats()
	log.Debug("move searched", "move", move.String(), "nodes", stats.Nodes, "table_hits", stats.TableHits, "cutoffs", stats.Cutoffs)

	if that.cache != nil {
		if err = that.cache.Set(ctx, key, move); err != nil {
			log.Error("failed to cache move", "error", err)
		}
	}

	return move, nil
}

// MakeTurn - plays the searched move for whichever symbol is due to move.
func (that *botService) MakeTurn(ctx context.Context, game *tictactoe.Game) (entity.Move, entity.GameState, error) {
	mover := game.Turn()

	move, err := that.BestMove(ctx, game, mover, game.Opponent(mover))
	if err != nil {
		return entity.Move{}, game.State(), err
	}

	if !game.IsValidMove(move.Row, move.Col) {
		return entity.Move{}, game.State(), fmt.Errorf("%w: %s", ErrStaleMove, move)
	}

	state, err := game.ApplyMove(move.Row, move.Col, mover)
	if err != nil {
		return entity.Move{}, state, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, state, nil
}

// cachedMove ignores cache failures and entries that do not fit the board.
func (that *botService) cachedMove(ctx context.Context, game *tictactoe.Game, key repository.MoveKey) (entity.Move, bool) {
	if that.cache == nil || game.State().IsTerminal() {
		return entity.Move{}, false
	}

	move, err := that.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrMoveNotCached) {
			that.logger.Error("failed to read move cache", "error", err)
		}
		return entity.Move{}, false
	}

	if !game.IsValidMove(move.Row, move.Col) {
		that.logger.Warn("cached move is not playable", "key", key.String(), "move", move.String())
		return entity.Move{}, false
	}

	return move, true
}
