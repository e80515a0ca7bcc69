package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	msgWelcome      = "Welcome to Tic-Tac-Toe! You are 'X'. The AI is 'O'."
	msgPrompt       = "Enter your move (1-9): "
	msgNotANumber   = "Please enter a valid number between 1 and 9."
	msgInvalidMove  = "Invalid move. Try again."
	msgBotThinking  = "AI is making a move..."
	msgHumanWins    = "You win! 🎉"
	msgComputerWins = "AI wins!"
	msgDraw         = "It's a draw!"
)

// Game plays one human versus computer game over a line based terminal. Cells are
// entered as 1-9, row by row.
type Game struct {
	logger   *slog.Logger
	in       *bufio.Scanner
	out      io.Writer
	selector tictactoe.MoveSelector
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, selector tictactoe.MoveSelector) *Game {
	return &Game{
		logger:   logger.With("component", "console"),
		in:       bufio.NewScanner(in),
		out:      out,
		selector: selector,
	}
}

// Run - plays until the game ends, the input is exhausted or ctx is done.
func (that *Game) Run(ctx context.Context) (entity.Outcome, error) {
	game := entity.NewGame(uuid.NewString())
	log := that.logger.With("game_id", game.ID)

	controller := tictactoe.NewGameController(game, that.selector, tictactoe.WithObserver(&renderer{out: that.out}))

	that.println(msgWelcome)
	that.print(renderBoard(game.Board))

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return game.Outcome, fmt.Errorf("console game interrupted: %w", err)
		}

		that.print(msgPrompt)

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return game.Outcome, fmt.Errorf("failed to read move: %w", err)
			}

			log.Info("input closed before the game ended")

			return game.Outcome, nil
		}

		number, err := strconv.Atoi(strings.TrimSpace(that.in.Text()))
		if err != nil {
			that.println(msgNotANumber)
			continue
		}

		err = controller.MakeTurn(ctx, number-1)
		switch {
		case errors.Is(err, apperror.ErrInvalidMove):
			that.println(msgInvalidMove)
		case err != nil:
			return game.Outcome, fmt.Errorf("failed to make turn: %w", err)
		}
	}

	log.Debug("game finished", "outcome", game.Outcome)

	return game.Outcome, nil
}

func (that *Game) print(s string) {
	_, _ = io.WriteString(that.out, s)
}

func (that *Game) println(s string) {
	that.print(s + "\n")
}

// renderer prints the board after every mark and the result once the game ends.
type renderer struct {
	out io.Writer
}

func (that *renderer) BoardChanged(board entity.Board) {
	_, _ = io.WriteString(that.out, renderBoard(board))

	if board.Outcome() == entity.InProgress && board.NextMark() == entity.MarkO {
		_, _ = fmt.Fprintln(that.out, msgBotThinking)
	}
}

func (that *renderer) GameOver(outcome entity.Outcome) {
	var msg string

	switch outcome {
	case entity.WinX:
		msg = msgHumanWins
	case entity.WinO:
		msg = msgComputerWins
	case entity.Draw:
		msg = msgDraw
	default:
		return
	}

	_, _ = fmt.Fprintln(that.out, msg)
}

func renderBoard(board entity.Board) string {
	var sb strings.Builder

	sb.WriteString("\n")

	for row := range 3 {
		sb.WriteString("|")

		for col := range 3 {
			mark := string(board.Get(row*3 + col))
			if mark == "" {
				mark = " "
			}

			sb.WriteString(" " + mark + " |")
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	return sb.String()
}
