// Package minimax scores tic-tac-toe positions by exhaustive game-tree search.
//
// O is the maximizing side and X the minimizing one. The search has no pruning and no
// depth limit: the 9-cell board bounds the recursion depth at 9, so every leaf is a real
// terminal position. The board is passed by pointer; every hypothetical mark is removed
// before the function that placed it returns.
package minimax

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Search values from O's point of view.
const (
	ValueWinX = -1
	ValueDraw = 0
	ValueWinO = 1

	// below every reachable value, so the first scored move always replaces it
	worstValue = ValueWinX - 1
)

// Evaluate - game-theoretic value of board when both sides play perfectly.
// maximizing is true when O is to move.
func Evaluate(board *entity.Board, maximizing bool) int {
	if board.HasWon(entity.MarkO) {
		return ValueWinO
	}

	if board.HasWon(entity.MarkX) {
		return ValueWinX
	}

	if board.IsDraw() {
		return ValueDraw
	}

	mark, best := entity.MarkX, ValueWinO+1
	if maximizing {
		mark, best = entity.MarkO, worstValue
	}

	for i := range board {
		if board[i] != entity.Empty {
			continue
		}

		board[i] = mark
		score := Evaluate(board, !maximizing)
		board[i] = entity.Empty

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

// ChooseMove - best cell for O. Moves are tried in ascending order and only a strictly
// greater score replaces the current choice, so the lowest index wins ties: on an empty
// board the answer is 0, not the centre.
func ChooseMove(board *entity.Board) (int, error) {
	bestScore, move := worstValue, entity.NoMove

	for i := range board {
		if board[i] != entity.Empty {
			continue
		}

		board[i] = entity.MarkO
		score := Evaluate(board, false)
		board[i] = entity.Empty

		if score > bestScore {
			bestScore, move = score, i
		}
	}

	if move == entity.NoMove {
		return entity.NoMove, apperror.ErrNoLegalMoves
	}

	return move, nil
}

// ChooseMoveParallel - same answer as ChooseMove, with each candidate scored in its own
// goroutine on a private copy of the board. board itself is never written.
func ChooseMoveParallel(ctx context.Context, board *entity.Board) (int, error) {
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return entity.NoMove, apperror.ErrNoLegalMoves
	}

	scores := make([]int, len(moves))

	group, ctx := errgroup.WithContext(ctx)
	for n, move := range moves {
		branch := *board
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			branch[move] = entity.MarkO
			scores[n] = Evaluate(&branch, false)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return entity.NoMove, fmt.Errorf("failed to score moves: %w", err)
	}

	bestScore, best := worstValue, entity.NoMove
	for n, score := range scores {
		if score > bestScore {
			bestScore, best = score, moves[n]
		}
	}

	return best, nil
}
