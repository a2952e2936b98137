package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/ai"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	game, humanMark, err := newGame(conf.Game)
	if err != nil {
		return err
	}

	searcher := ai.NewSearcher(ai.Options{
		Pruning:  conf.Search.Pruning,
		MaxDepth: conf.Search.MaxDepth,
	})

	var cacheRepo repository.MoveCacheRepository
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		cacheRepo = repository.NewMoveCacheRepository(redisStorage.Connection, conf.Redis.TTL)
		log.Info("Move cache enabled", "addr", redisAddrString, "ttl", conf.Redis.TTL)
	}

	botService := service.NewBotService(logger, searcher, cacheRepo)

	gameManager, err := usecase.NewGameManager(logger, game, botService, humanMark)
	if err != nil {
		return fmt.Errorf("could not create game manager: %w", err)
	}

	gameManager.UseSeatMessages(conf.Game.SeatMessages)

	// run console session
	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console game", "dimension", game.Dimensions(), "human", humanMark.String())
		consoleServer := console.New(logger, gameManager, os.Stdin, os.Stdout)
		consoleErrCh <- consoleServer.Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console session finished")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newGame - builds the game from config; the first symbol in the game moves first.
func newGame(conf config.Game) (*tictactoe.Game, entity.Symbol, error) {
	human, err := entity.ParseSymbol(conf.HumanSymbol)
	if err != nil {
		return nil, entity.EmptyCell, fmt.Errorf("invalid human symbol: %w", err)
	}

	bot, err := entity.ParseSymbol(conf.BotSymbol)
	if err != nil {
		return nil, entity.EmptyCell, fmt.Errorf("invalid bot symbol: %w", err)
	}

	first, second := human, bot
	if !conf.HumanFirst {
		first, second = bot, human
	}

	game, err := tictactoe.NewGameWithDimension(conf.Dimension, first, second)
	if err != nil {
		return nil, entity.EmptyCell, fmt.Errorf("could not create game: %w", err)
	}

	return game, human, nil
}
