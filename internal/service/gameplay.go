package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type GamePlayService interface {
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	locks *gameLocks
}

// gameLocks hands out one mutex per game ID. Entries are dropped once nobody holds or
// waits for them.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock - blocks until id is free and returns the matching unlock.
func (that *gameLocks) lock(id string) func() {
	that.mu.Lock()
	l, ok := that.locks[id]
	if !ok {
		l = &gameLock{}
		that.locks[id] = l
	}
	l.refs++
	that.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		that.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}

func (that *gameLocks) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
		locks:       newGameLocks(),
	}
}

// MakeTurn - plays the human's cell and the computer's answer on a stored game. On a
// rejected move the stored game is returned unchanged together with the error. Turns on
// the same game run one at a time, so each one sees the board its predecessor stored.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", gameID)

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	controller := tictactoe.NewGameController(game, that.botService)
	if err = controller.MakeTurn(ctx, cell); err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) || errors.Is(err, apperror.ErrGameFinished) {
			metrics.InvalidMovesTotal.Inc()
		}

		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		metrics.GamesFinishedTotal.WithLabelValues(string(game.Outcome)).Inc()
		log.Info("game finished", "outcome", game.Outcome)
	}

	return game, nil
}
