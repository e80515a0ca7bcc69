package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/pkg/handlers"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

// RunApp - runs the application in the configured mode.
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

	botService := service.NewBotService(logger, conf.Search.Parallel)

	if conf.Mode == config.ModeConsole {
		outcome, err := console.New(logger, os.Stdin, os.Stdout, botService).Run(ctx)
		if err != nil {
			return fmt.Errorf("console game failed: %w", err)
		}

		log.Info("Console game ended", "outcome", outcome)

		return nil
	}

	var (
		gameRepo repository.GameRepository
		checks   []handlers.Checker
	)

	switch conf.Storage {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
		checks = append(checks, redisStorage.Ping)
	default:
		log.Warn("Using in-memory storage, games are lost on restart")
		gameRepo = repository.NewMemoryGameRepository()
	}

	gameService := service.NewGameService(gameRepo)
	gamePlayService := service.NewGamePlayService(logger, gameService, botService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)

	router := rest.NewRouter(logger, gameService, gamePlayService, checks...)
	if err := rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
