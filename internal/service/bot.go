package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// BotService picks the computer's moves. It satisfies tictactoe.MoveSelector.
type BotService interface {
	ChooseMove(ctx context.Context, board *entity.Board) (int, error)
}

type botService struct {
	logger   *slog.Logger
	parallel bool
}

func NewBotService(logger *slog.Logger, parallel bool) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		parallel: parallel,
	}
}

func (that *botService) ChooseMove(ctx context.Context, board *entity.Board) (int, error) {
	strategy := metrics.StrategySequential
	if that.parallel {
		strategy = metrics.StrategyParallel
	}

	start := time.Now()

	var (
		cell int
		err  error
	)
	if that.parallel {
		cell, err = minimax.ChooseMoveParallel(ctx, board)
	} else {
		cell, err = minimax.ChooseMove(board)
	}

	elapsed := time.Since(start)
	metrics.BotMoveDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())

	if err != nil {
		return entity.NoMove, fmt.Errorf("bot failed to choose move: %w", err)
	}

	that.logger.Debug("bot chose move", "cell", cell, "strategy", strategy, "duration", elapsed)

	return cell, nil
}
