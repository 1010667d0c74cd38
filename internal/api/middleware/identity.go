package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/wordlebot-go/internal/api/apierr"
	"github.com/mcoot/wordlebot-go/internal/model"
)

type contextKey string

const (
	playerContextKey contextKey = "player"
	guildContextKey  contextKey = "guild"
)

// Identity headers set by the trusted chat gateway in front of this API
const (
	HeaderPlayerID = "X-Player-ID"
	HeaderGuildID  = "X-Guild-ID"
)

// Identity extracts the caller's player and guild ids from the gateway
// headers. Requests without a player id are rejected.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			playerID := r.Header.Get(HeaderPlayerID)
			if playerID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, playerContextKey, model.PlayerID(playerID))
			ctx = context.WithValue(ctx, guildContextKey, model.GuildID(r.Header.Get(HeaderGuildID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayerID returns the calling player from the request context
func GetPlayerID(ctx context.Context) model.PlayerID {
	playerID, _ := ctx.Value(playerContextKey).(model.PlayerID)
	return playerID
}

// GetGuildID returns the calling guild from the request context; empty
// outside any guild
func GetGuildID(ctx context.Context) model.GuildID {
	guildID, _ := ctx.Value(guildContextKey).(model.GuildID)
	return guildID
}

// MustGetPlayerID returns the calling player or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	playerID := GetPlayerID(ctx)
	if playerID == "" {
		panic("no player in context - identity middleware not applied?")
	}
	return playerID
}
