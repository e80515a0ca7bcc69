package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type gamePlayService interface {
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// turnRequest - cell is the 0-8 index of the human's mark, row by row.
type turnRequest struct {
	Cell *int `json:"cell" validate:"required"`
}

type gameResponse struct {
	ID         string         `json:"id"`
	Board      entity.Board   `json:"board"`
	Outcome    entity.Outcome `json:"outcome"`
	BotMove    *int           `json:"bot_move,omitempty"`
	LegalMoves []int          `json:"legal_moves"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(game *entity.Game) gameResponse {
	resp := gameResponse{
		ID:         game.ID,
		Board:      game.Board,
		Outcome:    game.Outcome,
		LegalMoves: []int{},
		CreatedAt:  game.CreatedAt,
		UpdatedAt:  game.UpdatedAt,
	}

	if game.BotMove != entity.NoMove {
		botMove := game.BotMove
		resp.BotMove = &botMove
	}

	if !game.IsFinished() {
		resp.LegalMoves = game.Board.LegalMoves()
	}

	return resp
}

type gameHandlers struct {
	logger      *slog.Logger
	gameService gameService
	gamePlay    gamePlayService
}

func newGameHandlers(logger *slog.Logger, gameService gameService, gamePlay gamePlayService) *gameHandlers {
	return &gameHandlers{
		logger:      logger.With("component", "rest"),
		gameService: gameService,
		gamePlay:    gamePlay,
	}
}

func (that *gameHandlers) create(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(game))
}

func (that *gameHandlers) get(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *gameHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) turn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	if err := validate.Struct(req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *gameHandlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperror.ErrGameFinished):
		status, msg = http.StatusConflict, apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrGameNotFound):
		status, msg = http.StatusNotFound, apperror.ErrGameNotFound.Error()
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: msg})
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
