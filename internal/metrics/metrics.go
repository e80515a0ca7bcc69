// Package metrics holds the Prometheus collectors of the game server.
//
// Collectors are registered on the default registry at init time and exposed by the REST
// transport on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StrategySequential = "sequential"
	StrategyParallel   = "parallel"
)

var (
	// BotMoveDuration tracks how long the minimax selector takes per move.
	BotMoveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tictactoe_bot_move_duration_seconds",
			Help: "Duration of computer move selection in seconds",
			// an empty board is the slowest case, a few hundred milliseconds at most
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"strategy"},
	)

	// GamesCreatedTotal counts games started through the game service.
	GamesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tictactoe_games_created_total",
			Help: "Total number of games created",
		},
	)

	// GamesFinishedTotal counts finished games by outcome.
	GamesFinishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Total number of finished games by outcome",
		},
		[]string{"outcome"},
	)

	// InvalidMovesTotal counts rejected human moves.
	InvalidMovesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tictactoe_invalid_moves_total",
			Help: "Total number of rejected moves",
		},
	)
)
