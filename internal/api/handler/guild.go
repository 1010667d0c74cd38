package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordlebot-go/internal/api/request"
	"github.com/mcoot/wordlebot-go/internal/api/response"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// GuildHandler handles guild configuration endpoints
type GuildHandler struct {
	controller *game.Controller
}

// NewGuildHandler creates a new guild handler
func NewGuildHandler(controller *game.Controller) *GuildHandler {
	return &GuildHandler{controller: controller}
}

// GetChannel handles GET /api/v1/guilds/{guild_id}/channel
func (h *GuildHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	guildID := model.GuildID(mux.Vars(r)["guild_id"])

	cfg, err := h.controller.GuildChannel(r.Context(), guildID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GuildChannelFromModel(cfg))
}

// SetChannel handles PUT /api/v1/guilds/{guild_id}/channel
func (h *GuildHandler) SetChannel(w http.ResponseWriter, r *http.Request) {
	guildID := model.GuildID(mux.Vars(r)["guild_id"])

	var req request.GuildChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.ChannelID == "" {
		WriteError(w, NewInvalidRequestError("channel_id must not be empty"))
		return
	}

	cfg, err := h.controller.SetGuildChannel(r.Context(), guildID, req.ChannelID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GuildChannelFromModel(cfg))
}
