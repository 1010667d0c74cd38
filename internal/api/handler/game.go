package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordlebot-go/internal/api/middleware"
	"github.com/mcoot/wordlebot-go/internal/api/request"
	"github.com/mcoot/wordlebot-go/internal/api/response"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	controller *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller) *GameHandler {
	return &GameHandler{controller: controller}
}

// Start handles POST /api/v1/games
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	guildID := middleware.GetGuildID(r.Context())

	g, err := h.controller.StartGame(r.Context(), playerID, guildID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// StartDaily handles POST /api/v1/daily/games
func (h *GameHandler) StartDaily(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())
	guildID := middleware.GetGuildID(r.Context())

	g, err := h.controller.StartDailyGame(r.Context(), playerID, guildID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// Get handles GET /api/v1/games/current
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	g, err := h.controller.GetGame(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Guess handles POST /api/v1/games/current/guesses
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	result, err := h.controller.SubmitGuess(r.Context(), playerID, req.Word)
	// A persistence warning rides along with a successful outcome
	if err != nil && !errors.Is(err, model.ErrPersistence) {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GuessResultFromModel(result))
}

// Hint handles POST /api/v1/games/current/hints
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	result, err := h.controller.RequestHint(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HintResult{
		Game:    response.GameStateFromModel(result.Game),
		Letter:  result.Letter,
		Display: result.Display,
	})
}

// Abandon handles DELETE /api/v1/games/current
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	if err := h.controller.AbandonGame(r.Context(), playerID); err != nil &&
		!errors.Is(err, model.ErrPersistence) {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Daily handles GET /api/v1/daily
func (h *GameHandler) Daily(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	played, err := h.controller.HasPlayedDaily(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	date, standings, err := h.controller.DailyStandings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	rows := make([]response.DailyStanding, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, response.DailyStanding{
			PlayerID:   string(s.PlayerID),
			Attempts:   s.Attempts,
			FinishedAt: s.FinishedAt,
		})
	}
	response.JSON(w, http.StatusOK, response.DailyStatus{
		Date:      date,
		Played:    played,
		Standings: rows,
	})
}
