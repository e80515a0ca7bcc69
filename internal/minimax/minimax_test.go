package minimax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	x = entity.MarkX
	o = entity.MarkO
	e = entity.Empty
)

func TestEvaluate_TerminalBoards(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		want  int
	}{
		{
			name: "O has a line",
			board: entity.Board{
				o, o, o,
				x, x, e,
				x, e, e,
			},
			want: ValueWinO,
		},
		{
			name: "X has a line",
			board: entity.Board{
				x, o, e,
				x, o, e,
				x, e, e,
			},
			want: ValueWinX,
		},
		{
			name: "Full board without a line",
			board: entity.Board{
				x, o, x,
				x, o, o,
				o, x, x,
			},
			want: ValueDraw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The side to move does not matter once the game is over.
			assert.Equal(t, tt.want, Evaluate(&tt.board, true))
			assert.Equal(t, tt.want, Evaluate(&tt.board, false))
		})
	}
}

func TestEvaluate_KnownPositions(t *testing.T) {
	t.Run("Empty board is a draw", func(t *testing.T) {
		board := entity.Board{}

		assert.Equal(t, ValueDraw, Evaluate(&board, false))
	})

	t.Run("X to move completes a line", func(t *testing.T) {
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		assert.Equal(t, ValueWinX, Evaluate(&board, false))
	})

	t.Run("O to move completes a line", func(t *testing.T) {
		board := entity.Board{
			x, x, e,
			o, o, e,
			x, e, e,
		}

		assert.Equal(t, ValueWinO, Evaluate(&board, true))
	})

	t.Run("X completes the diagonal", func(t *testing.T) {
		// Given: X holds 0 and 4 with 8 still open
		board := entity.Board{
			x, o, e,
			e, x, e,
			o, e, e,
		}
		require.Equal(t, entity.MarkX, board.NextMark())

		// Then: X wins with 8 on the diagonal
		assert.Equal(t, ValueWinX, Evaluate(&board, false))
	})
}

func TestEvaluate_LeavesBoardUnchanged(t *testing.T) {
	boards := []entity.Board{
		{},
		{x, e, e, e, e, e, e, e, e},
		{x, x, e, o, o, e, e, e, e},
		{e, e, e, e, o, e, e, x, x},
		// not reachable through alternating turns, still in range
		{o, o, e, o, e, e, e, e, e},
		{x, x, e, x, e, e, x, e, e},
		{o, x, o, x, o, x, e, e, e},
	}

	for _, board := range boards {
		for _, maximizing := range []bool{true, false} {
			// Given: a copy of the board before searching
			before := board

			// When: the board is searched
			value := Evaluate(&board, maximizing)

			// Then: the value is a legal search value and no cell changed
			assert.Contains(t, []int{ValueWinX, ValueDraw, ValueWinO}, value)
			assert.Equal(t, before, board)
		}
	}
}

func TestEvaluate_AllReachablePositions(t *testing.T) {
	positions := reachablePositions()
	require.Len(t, positions, 4520, "non-terminal positions reachable from the empty board")

	for board := range positions {
		before := board
		maximizing := board.NextMark() == entity.MarkO

		value := Evaluate(&board, maximizing)

		require.Contains(t, []int{ValueWinX, ValueDraw, ValueWinO}, value, "board %v", before)
		require.Equal(t, before, board, "search must not leave marks behind")
	}
}

func TestEvaluate_OptimalPlayMatchesValue(t *testing.T) {
	// Given: every position after the first one or two moves
	var boards []entity.Board
	for first := range entity.BoardSize {
		board := entity.Board{}
		board.Set(first, x)
		boards = append(boards, board)

		for second := range entity.BoardSize {
			if second == first {
				continue
			}

			reply := board
			reply.Set(second, o)
			boards = append(boards, reply)
		}
	}

	for _, board := range boards {
		maximizing := board.NextMark() == entity.MarkO
		value := Evaluate(&board, maximizing)

		// When: both sides keep choosing a move that achieves the searched extreme
		outcome := playOptimally(t, board)

		// Then: the game ends the way the value predicted
		assert.Equal(t, outcomeForValue(value), outcome, "board %v", board)
	}
}

func TestChooseMove(t *testing.T) {
	t.Run("Empty board picks the first cell", func(t *testing.T) {
		board := entity.Board{}

		move, err := ChooseMove(&board)

		require.NoError(t, err)
		assert.Equal(t, 0, move)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Opening at 0 is drawn under perfect play", func(t *testing.T) {
		// Given: O took the cell chosen on the empty board
		board := entity.Board{}
		move, err := ChooseMove(&board)
		require.NoError(t, err)
		board.Set(move, o)

		// When: X moves next and both sides play perfectly
		outcome := playOptimallyFrom(t, board, false)

		// Then: the game is a draw
		assert.Equal(t, entity.Draw, outcome)
	})

	t.Run("Blocking cell that also forks wins the tie", func(t *testing.T) {
		// Given: X threatens 2 and O could win at 5
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		// When: the computer picks a move
		move, err := ChooseMove(&board)

		// Then: 2 blocks X and opens two lines for O, both 2 and 5 are forced wins,
		// and the lower index comes first
		require.NoError(t, err)
		assert.Equal(t, 2, move)

		board.Set(2, o)
		assert.Equal(t, ValueWinO, Evaluate(&board, false))
	})

	t.Run("Must block the only threat", func(t *testing.T) {
		// Given: X threatens to complete the bottom row at 6
		board := entity.Board{
			e, e, e,
			e, o, e,
			e, x, x,
		}

		move, err := ChooseMove(&board)

		require.NoError(t, err)
		assert.Equal(t, 6, move)
	})

	t.Run("Takes the immediate win over a drawing block", func(t *testing.T) {
		board := entity.Board{
			x, x, e,
			o, o, e,
			x, e, e,
		}

		move, err := ChooseMove(&board)

		require.NoError(t, err)
		assert.Equal(t, 5, move)
	})

	t.Run("Single empty cell", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, e,
		}

		move, err := ChooseMove(&board)

		require.NoError(t, err)
		assert.Equal(t, 8, move)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		move, err := ChooseMove(&board)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
		assert.Equal(t, entity.NoMove, move)
	})
}

func TestChooseMove_NeverTargetsOccupiedCell(t *testing.T) {
	for board := range reachablePositions() {
		if board.NextMark() != entity.MarkO {
			continue
		}

		before := board

		move, err := ChooseMove(&board)

		require.NoError(t, err)
		require.Contains(t, before.LegalMoves(), move, "board %v", before)
		require.Equal(t, before, board)
	}
}

func TestChooseMoveParallel(t *testing.T) {
	t.Run("Agrees with the sequential selector", func(t *testing.T) {
		ctx := context.Background()

		for board := range reachablePositions() {
			if board.NextMark() != entity.MarkO {
				continue
			}

			before := board

			want, err := ChooseMove(&board)
			require.NoError(t, err)

			got, err := ChooseMoveParallel(ctx, &board)
			require.NoError(t, err)

			require.Equal(t, want, got, "board %v", before)
			require.Equal(t, before, board)
		}
	})

	t.Run("Empty board picks the first cell", func(t *testing.T) {
		board := entity.Board{}

		move, err := ChooseMoveParallel(context.Background(), &board)

		require.NoError(t, err)
		assert.Equal(t, 0, move)
	})

	t.Run("Full board has no move", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		_, err := ChooseMoveParallel(context.Background(), &board)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		board := entity.Board{}

		move, err := ChooseMoveParallel(ctx, &board)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, entity.NoMove, move)
		assert.Equal(t, entity.Board{}, board)
	})
}

// reachablePositions - every non-terminal board that alternating play from the empty
// board can produce.
func reachablePositions() map[entity.Board]struct{} {
	seen := make(map[entity.Board]struct{})

	var walk func(board entity.Board)
	walk = func(board entity.Board) {
		if board.Outcome() != entity.InProgress {
			return
		}

		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		mark := board.NextMark()
		for _, move := range board.LegalMoves() {
			next := board
			next.Set(move, mark)
			walk(next)
		}
	}
	walk(entity.Board{})

	return seen
}

func playOptimally(t *testing.T, board entity.Board) entity.Outcome {
	t.Helper()

	return playOptimallyFrom(t, board, board.NextMark() == entity.MarkO)
}

func playOptimallyFrom(t *testing.T, board entity.Board, maximizing bool) entity.Outcome {
	t.Helper()

	for board.Outcome() == entity.InProgress {
		target := Evaluate(&board, maximizing)

		mark := x
		if maximizing {
			mark = o
		}

		played := false
		for _, move := range board.LegalMoves() {
			board.Set(move, mark)
			if Evaluate(&board, !maximizing) == target {
				played = true
				break
			}
			board.Set(move, e)
		}
		require.True(t, played, "no move reaches value %d on %v", target, board)

		maximizing = !maximizing
	}

	return board.Outcome()
}

func outcomeForValue(value int) entity.Outcome {
	switch value {
	case ValueWinO:
		return entity.WinO
	case ValueWinX:
		return entity.WinX
	default:
		return entity.Draw
	}
}
