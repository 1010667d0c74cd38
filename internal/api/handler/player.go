package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/wordlebot-go/internal/api/middleware"
	"github.com/mcoot/wordlebot-go/internal/api/request"
	"github.com/mcoot/wordlebot-go/internal/api/response"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/achievement"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// PlayerHandler handles settings and achievement endpoints
type PlayerHandler struct {
	controller *game.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *game.Controller) *PlayerHandler {
	return &PlayerHandler{controller: controller}
}

// GetSettings handles GET /api/v1/players/me/settings
func (h *PlayerHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	settings, err := h.controller.Settings(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SettingsFromModel(settings))
}

// UpdateSettings handles PATCH /api/v1/players/me/settings
func (h *PlayerHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	settings, err := h.controller.UpdateSettings(r.Context(), playerID, model.SettingsPatch{
		StatsPublic:   req.StatsPublic,
		HistoryPublic: req.HistoryPublic,
		AnonymousMode: req.AnonymousMode,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SettingsFromModel(settings))
}

// SetPersonaPassword handles PUT /api/v1/players/me/settings/persona-password
func (h *PlayerHandler) SetPersonaPassword(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	var req request.PersonaPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("Password must not be empty"))
		return
	}

	if err := h.controller.SetPersonaPassword(r.Context(), playerID, req.Password); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Achievements handles GET /api/v1/players/me/achievements
func (h *PlayerHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	held, err := h.controller.Achievements(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Catalog order, unlocked only
	unlocked := make([]response.UnlockedAchievement, 0, len(held))
	for _, a := range achievement.Catalog {
		at, ok := held[a.ID]
		if !ok {
			continue
		}
		unlocked = append(unlocked, response.UnlockedAchievement{
			Achievement: response.AchievementFromModel(a),
			UnlockedAt:  at,
		})
	}
	response.JSON(w, http.StatusOK, unlocked)
}
