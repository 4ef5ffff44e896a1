package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridrock/tictactoe-backend/internal/ai"
	"github.com/gridrock/tictactoe-backend/internal/apperror"
	"github.com/gridrock/tictactoe-backend/internal/entity"
)

var errInvalidRequest = errors.New("invalid request body")

type gamePlayService interface {
	CreateGame(ctx context.Context, startingPlayer entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetHistory(ctx context.Context, gameID string) (*entity.History, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, row, col int, mark entity.Mark) (*entity.Game, error)
	MakeBotMove(ctx context.Context, gameID string, difficulty ai.Difficulty) (*entity.Game, error)
}

type Handlers struct {
	logger   *slog.Logger
	gameplay gamePlayService
}

func NewHandlers(logger *slog.Logger, gameplay gamePlayService) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest_handlers"),
		gameplay: gameplay,
	}
}

type createGameRequest struct {
	StartingPlayer *entity.Mark `json:"starting_player"`
}

type moveRequest struct {
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Player entity.Mark `json:"player"`
}

type botMoveRequest struct {
	Difficulty ai.Difficulty `json:"difficulty"`
}

type gameSummary struct {
	ID          string        `json:"id"`
	Status      entity.Status `json:"status"`
	CurrentTurn entity.Mark   `json:"current_turn"`
}

type gamesListResponse struct {
	Games []gameSummary `json:"games"`
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	// an empty body means "start with the default player"
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, errInvalidRequest)
		return
	}

	startingPlayer := entity.MarkX
	if req.StartingPlayer != nil {
		startingPlayer = *req.StartingPlayer
	}

	game, err := that.gameplay.CreateGame(r.Context(), startingPlayer)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.gameplay.ListGames(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	resp := gamesListResponse{Games: make([]gameSummary, 0, len(games))}
	for _, game := range games {
		resp.Games = append(resp.Games, gameSummary{
			ID:          game.ID,
			Status:      game.Status,
			CurrentTurn: game.CurrentTurn,
		})
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameplay.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := that.gameplay.GetHistory(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, history)
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errInvalidRequest)
		return
	}

	if !req.Player.IsValid() {
		that.writeError(w, entity.ErrInvalidMark)
		return
	}

	game, err := that.gameplay.MakeMove(r.Context(), chi.URLParam(r, "gameID"), req.Row, req.Col, req.Player)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) MakeBotMove(w http.ResponseWriter, r *http.Request) {
	var req botMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errInvalidRequest)
		return
	}

	if !req.Difficulty.IsValid() {
		that.writeError(w, errInvalidRequest)
		return
	}

	game, err := that.gameplay.MakeBotMove(r.Context(), chi.URLParam(r, "gameID"), req.Difficulty)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses: an unknown game is
// 404, an occupied cell 409, every other rule violation 400.
func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	var status int

	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrHistoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidPosition),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNoLegalMove),
		errors.Is(err, entity.ErrInvalidMark),
		errors.Is(err, errInvalidRequest):
		status = http.StatusBadRequest
	default:
		that.logger.Error("request failed", "error", err)
		status = http.StatusInternalServerError
	}

	that.writeJSON(w, status, map[string]string{"error": err.Error()})
}
