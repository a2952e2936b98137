package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrMoveNotCached = errors.New("move not cached")

// MoveKey identifies a search result: the same board, side to move and depth
// limit always yield the same move.
type MoveKey struct {
	Board    string
	Mover    entity.Symbol
	Opponent entity.Symbol
	MaxDepth int
}

func (that MoveKey) String() string {
	return "bestmove:" + that.Mover.String() + ":" + that.Opponent.String() + ":" + strconv.Itoa(that.MaxDepth) + ":" + that.Board
}

type MoveCacheRepository interface {
	Get(ctx context.Context, key MoveKey) (entity.Move, error)
	Set(ctx context.Context, key MoveKey, move entity.Move) error
}

type dbMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveCacheRepository - stores moves in redis; a zero ttl keeps them forever.
func NewMoveCacheRepository(client *redis.Client, ttl time.Duration) MoveCacheRepository {
	return &dbMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMoveCache) Get(ctx context.Context, key MoveKey) (entity.Move, error) {
	response, err := that.client.Get(ctx, key.String()).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Move{}, ErrMoveNotCached
	}

	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to get cached move: %w", err)
	}

	var move entity.Move
	if err = json.Unmarshal([]byte(response), &move); err != nil {
		return entity.Move{}, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	return move, nil
}

func (that *dbMoveCache) Set(ctx context.Context, key MoveKey, move entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.Set(ctx, key.String(), moveJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}
