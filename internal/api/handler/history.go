package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordlebot-go/internal/api/middleware"
	"github.com/mcoot/wordlebot-go/internal/api/response"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// HeaderPersonaPassword carries the anonymous-persona password for reads of
// the anonymous partition. Never logged.
const HeaderPersonaPassword = "X-Persona-Password"

const defaultRecentLimit = 10

// HistoryHandler handles history, stats and leaderboard endpoints
type HistoryHandler struct {
	controller *game.Controller
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(controller *game.Controller) *HistoryHandler {
	return &HistoryHandler{controller: controller}
}

// parseFilter reads optional from/to date bounds (RFC 3339 or 2006-01-02)
func parseFilter(r *http.Request) (model.HistoryFilter, error) {
	var filter model.HistoryFilter
	for _, bound := range []struct {
		param string
		dest  **time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		raw := r.URL.Query().Get(bound.param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return filter, NewInvalidRequestError("Invalid " + bound.param + " date")
		}
		*bound.dest = &t
	}
	return filter, nil
}

// targetPlayer resolves the {player_id} path segment; "me" means the caller
func targetPlayer(r *http.Request) model.PlayerID {
	target := mux.Vars(r)["player_id"]
	if target == "" || target == "me" {
		return middleware.MustGetPlayerID(r.Context())
	}
	return model.PlayerID(target)
}

// History handles GET /api/v1/players/{player_id}/history
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	requester := middleware.MustGetPlayerID(r.Context())
	guildID := middleware.GetGuildID(r.Context())
	target := targetPlayer(r)

	filter, err := parseFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	anonymous := r.URL.Query().Get("anonymous") == "true"
	password := r.Header.Get(HeaderPersonaPassword)

	records, err := h.controller.History(r.Context(), requester, target, guildID, anonymous, password, filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HistoryRecordsFromModel(records))
}

// Stats handles GET /api/v1/players/{player_id}/stats
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	requester := middleware.MustGetPlayerID(r.Context())
	guildID := middleware.GetGuildID(r.Context())
	target := targetPlayer(r)

	filter, err := parseFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	anonymous := r.URL.Query().Get("anonymous") == "true"
	password := r.Header.Get(HeaderPersonaPassword)

	stats, err := h.controller.Stats(r.Context(), requester, target, guildID, anonymous, password, filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(stats))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *HistoryHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	guildID := middleware.GetGuildID(r.Context())

	entries, err := h.controller.Leaderboard(r.Context(), guildID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Recent handles GET /api/v1/leaderboard/recent
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	guildID := middleware.GetGuildID(r.Context())

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("Invalid limit"))
			return
		}
		limit = parsed
	}

	records, err := h.controller.RecentGames(r.Context(), guildID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HistoryRecordsFromModel(records))
}
