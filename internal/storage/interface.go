package storage

import (
	"context"

	"github.com/mcoot/wordlebot-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// History operations. Records are append-only; reads return newest-first.
	AppendHistory(ctx context.Context, scope model.Scope, rec *model.HistoryRecord) error
	GetPlayerHistory(ctx context.Context, scope model.Scope, persona model.PersonaID) ([]*model.HistoryRecord, error)
	GetScopeHistory(ctx context.Context, scope model.Scope) ([]*model.HistoryRecord, error)

	// Player settings operations
	SaveSettings(ctx context.Context, settings *model.PlayerSettings) error
	GetSettings(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error)

	// Daily challenge state operations
	SaveDailyState(ctx context.Context, state *model.DailyState) error
	GetDailyState(ctx context.Context) (*model.DailyState, error)

	// Achievement operations
	GetAchievements(ctx context.Context, playerID model.PlayerID) (model.AchievementRecord, error)
	SaveAchievements(ctx context.Context, playerID model.PlayerID, record model.AchievementRecord) error

	// Guild configuration operations
	SaveGuildConfig(ctx context.Context, cfg *model.GuildConfig) error
	GetGuildConfig(ctx context.Context, guildID model.GuildID) (*model.GuildConfig, error)

	// Word list operations
	SaveWordList(ctx context.Context, words []string) error
	GetWordList(ctx context.Context) ([]string, error)
}
