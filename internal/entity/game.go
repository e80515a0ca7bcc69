package entity

import "time"

// Outcome is the state of a game as seen by the turn controller.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	WinX       Outcome = "win_x"
	WinO       Outcome = "win_o"
	Draw       Outcome = "draw"
)

// NoMove marks a game in which the computer has not moved yet.
const NoMove = -1

func (that Outcome) IsTerminal() bool {
	return that == WinX || that == WinO || that == Draw
}

// Game is a single human (X) versus computer (O) match.
type Game struct {
	ID        string    `json:"id"`
	Board     Board     `json:"board"`
	Outcome   Outcome   `json:"outcome"`
	BotMove   int       `json:"bot_move"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id string) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:        id,
		Board:     Board{},
		Outcome:   InProgress,
		BotMove:   NoMove,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}
