package redis

import (
	"fmt"

	"github.com/mcoot/wordlebot-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordlebot"

// Key generation functions for each entity type

// scopeHistoryKey returns the Redis key for a scope's history list
func scopeHistoryKey(scope model.Scope) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, scope)
}

// playerHistoryKey returns the Redis key for one persona's history within a scope
func playerHistoryKey(scope model.Scope, persona model.PersonaID) string {
	return fmt.Sprintf("%s:history:%s:player:%s", keyPrefix, scope, persona)
}

// settingsKey returns the Redis key for a player's settings
func settingsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:settings:%s", keyPrefix, playerID)
}

// dailyStateKey returns the Redis key for the daily challenge state singleton
func dailyStateKey() string {
	return fmt.Sprintf("%s:daily", keyPrefix)
}

// achievementsKey returns the Redis key for a player's achievement record
func achievementsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:achievements:%s", keyPrefix, playerID)
}

// guildConfigKey returns the Redis key for a guild's channel configuration
func guildConfigKey(guildID model.GuildID) string {
	return fmt.Sprintf("%s:guild_config:%s", keyPrefix, guildID)
}

// wordListKey returns the Redis key for the word list
func wordListKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
