package apperror

import "errors"

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrGameFinished  = errors.New("game is already finished")
	ErrGameNotFound  = errors.New("game not found")
	ErrNoLegalMoves  = errors.New("no legal moves left")
	ErrInvalidConfig = errors.New("invalid configuration")
)
