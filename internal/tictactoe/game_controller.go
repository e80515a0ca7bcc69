package tictactoe

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrInvalidCell  = fmt.Errorf("%w: cell index out of range", apperror.ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", apperror.ErrInvalidMove)
)

// MoveSelector picks the computer's (O) cell on the given board.
type MoveSelector interface {
	ChooseMove(ctx context.Context, board *entity.Board) (int, error)
}

type MoveSelectorFunc func(ctx context.Context, board *entity.Board) (int, error)

func (f MoveSelectorFunc) ChooseMove(ctx context.Context, board *entity.Board) (int, error) {
	return f(ctx, board)
}

// Observer receives a copy of the board after every placed mark and the outcome once the
// game ends.
type Observer interface {
	BoardChanged(board entity.Board)
	GameOver(outcome entity.Outcome)
}

type noopObserver struct{}

func (noopObserver) BoardChanged(entity.Board) {}
func (noopObserver) GameOver(entity.Outcome) {}

type Option func(*GameController)

func WithObserver(observer Observer) Option {
	return func(that *GameController) {
		if observer != nil {
			that.observer = observer
		}
	}
}

// GameController drives one human (X) versus computer (O) game. The human always moves
// first; every accepted human move is answered by the selector in the same call.
type GameController struct {
	game     *entity.Game
	selector MoveSelector
	observer Observer
}

func NewGameController(game *entity.Game, selector MoveSelector, opts ...Option) *GameController {
	controller := &GameController{
		game:     game,
		selector: selector,
		observer: noopObserver{},
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

func (that *GameController) Outcome() entity.Outcome {
	return that.game.Outcome
}

func (that *GameController) Board() entity.Board {
	return that.game.Board
}

// MakeTurn - places X at cell and, unless that ends the game, O at the selector's cell.
// A rejected turn leaves the game untouched.
func (that *GameController) MakeTurn(ctx context.Context, cell int) error {
	if that.game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(&that.game.Board, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board := &that.game.Board
	board.Set(cell, entity.MarkX)

	that.observer.BoardChanged(*board)

	if outcome := board.Outcome(); outcome.IsTerminal() {
		that.finish(outcome)

		return nil
	}

	botCell, err := that.selector.ChooseMove(ctx, board)
	if err != nil {
		board.Set(cell, entity.Empty)
		that.observer.BoardChanged(*board)

		return fmt.Errorf("failed to choose bot move: %w", err)
	}

	if !board.IsLegalMove(botCell) {
		board.Set(cell, entity.Empty)

		panic(fmt.Sprintf("move selector chose illegal cell %d on %v", botCell, *board))
	}

	board.Set(botCell, entity.MarkO)
	that.game.BotMove = botCell
	that.game.UpdatedAt = time.Now().UTC()
	that.observer.BoardChanged(*board)

	if outcome := board.Outcome(); outcome.IsTerminal() {
		that.finish(outcome)
	}

	return nil
}

func (that *GameController) finish(outcome entity.Outcome) {
	that.game.Outcome = outcome
	that.game.UpdatedAt = time.Now().UTC()
	that.observer.GameOver(outcome)
}

// validateMove - checks if the move is valid.
func validateMove(board *entity.Board, cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return ErrInvalidCell
	}

	if board.Get(cell) != entity.Empty {
		return ErrCellOccupied
	}

	return nil
}
