// Package api is the JSON surface the chat gateway calls.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordlebot-go/internal/api/handler"
	"github.com/mcoot/wordlebot-go/internal/api/middleware"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)
	historyHandler := handler.NewHistoryHandler(cfg.GameController)
	playerHandler := handler.NewPlayerHandler(cfg.GameController)
	guildHandler := handler.NewGuildHandler(cfg.GameController)

	identityMiddleware := middleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires the gateway identity headers
	identified := api.NewRoute().Subrouter()
	identified.Use(identityMiddleware)

	// Game lifecycle
	identified.HandleFunc("/games", gameHandler.Start).Methods(http.MethodPost)
	identified.HandleFunc("/games/current", gameHandler.Get).Methods(http.MethodGet)
	identified.HandleFunc("/games/current", gameHandler.Abandon).Methods(http.MethodDelete)
	identified.HandleFunc("/games/current/guesses", gameHandler.Guess).Methods(http.MethodPost)
	identified.HandleFunc("/games/current/hints", gameHandler.Hint).Methods(http.MethodPost)

	// Daily challenge
	identified.HandleFunc("/daily", gameHandler.Daily).Methods(http.MethodGet)
	identified.HandleFunc("/daily/games", gameHandler.StartDaily).Methods(http.MethodPost)

	// History, stats and leaderboards
	identified.HandleFunc("/players/{player_id}/history", historyHandler.History).Methods(http.MethodGet)
	identified.HandleFunc("/players/{player_id}/stats", historyHandler.Stats).Methods(http.MethodGet)
	identified.HandleFunc("/leaderboard", historyHandler.Leaderboard).Methods(http.MethodGet)
	identified.HandleFunc("/leaderboard/recent", historyHandler.Recent).Methods(http.MethodGet)

	// Settings and achievements
	identified.HandleFunc("/players/me/settings", playerHandler.GetSettings).Methods(http.MethodGet)
	identified.HandleFunc("/players/me/settings", playerHandler.UpdateSettings).Methods(http.MethodPatch)
	identified.HandleFunc("/players/me/settings/persona-password", playerHandler.SetPersonaPassword).Methods(http.MethodPut)
	identified.HandleFunc("/players/me/achievements", playerHandler.Achievements).Methods(http.MethodGet)

	// Guild configuration
	identified.HandleFunc("/guilds/{guild_id}/channel", guildHandler.GetChannel).Methods(http.MethodGet)
	identified.HandleFunc("/guilds/{guild_id}/channel", guildHandler.SetChannel).Methods(http.MethodPut)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
