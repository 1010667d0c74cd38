package game

import (
	"context"

	"github.com/mcoot/wordlebot-go/internal/model"
)

// scopeFor picks the partition queried for a guild context
func scopeFor(guildID model.GuildID) model.Scope {
	if guildID == "" {
		return model.ScopeGlobal
	}
	return model.GuildScope(guildID)
}

// History returns a player's finished games. Another player's history
// requires their history to be public; the anonymous partition is only
// readable by its owner, gated by the persona password when one is set.
func (c *Controller) History(ctx context.Context, requester, target model.PlayerID, guildID model.GuildID, anonymous bool, password string, filter model.HistoryFilter) ([]*model.HistoryRecord, error) {
	if anonymous {
		persona, err := c.authorizeAnonymous(ctx, requester, target, password)
		if err != nil {
			return nil, err
		}
		return c.history.PlayerGames(ctx, model.ScopeAnonymous, persona, filter)
	}

	if requester != target {
		settings, err := c.identity.GetSettings(ctx, target)
		if err != nil {
			return nil, err
		}
		if !settings.HistoryPublic {
			return nil, model.ErrPrivateScope
		}
	}
	return c.history.PlayerGames(ctx, scopeFor(guildID), model.PersonaID(target), filter)
}

// Stats returns a player's aggregate stats under the same access rules as
// History, gated by the stats-public setting instead
func (c *Controller) Stats(ctx context.Context, requester, target model.PlayerID, guildID model.GuildID, anonymous bool, password string, filter model.HistoryFilter) (*model.PlayerStats, error) {
	if anonymous {
		persona, err := c.authorizeAnonymous(ctx, requester, target, password)
		if err != nil {
			return nil, err
		}
		return c.history.Stats(ctx, model.ScopeAnonymous, persona, filter)
	}

	if requester != target {
		settings, err := c.identity.GetSettings(ctx, target)
		if err != nil {
			return nil, err
		}
		if !settings.StatsPublic {
			return nil, model.ErrPrivateScope
		}
	}
	return c.history.Stats(ctx, scopeFor(guildID), model.PersonaID(target), filter)
}

// authorizeAnonymous grants the owner access to their anonymous partition
func (c *Controller) authorizeAnonymous(ctx context.Context, requester, target model.PlayerID, password string) (model.PersonaID, error) {
	if requester != target {
		return "", model.ErrPrivateScope
	}
	if err := c.identity.VerifyPersonaPassword(ctx, target, password); err != nil {
		return "", err
	}
	settings, err := c.identity.GetSettings(ctx, target)
	if err != nil {
		return "", err
	}
	return settings.AnonymousPersonaID, nil
}

// Leaderboard ranks the guild's (or global) players by wins
func (c *Controller) Leaderboard(ctx context.Context, guildID model.GuildID) ([]model.LeaderboardEntry, error) {
	return c.history.Leaderboard(ctx, scopeFor(guildID))
}

// RecentGames returns the scope's latest finished games
func (c *Controller) RecentGames(ctx context.Context, guildID model.GuildID, limit int) ([]*model.HistoryRecord, error) {
	return c.history.RecentGames(ctx, scopeFor(guildID), limit)
}

// HasPlayedDaily reports whether the player already used today's attempt
func (c *Controller) HasPlayedDaily(ctx context.Context, playerID model.PlayerID) (bool, error) {
	return c.daily.HasPlayed(ctx, playerID)
}

// DailyStandings returns today's date and ranking
func (c *Controller) DailyStandings(ctx context.Context) (string, []model.DailyStanding, error) {
	date, err := c.daily.Date(ctx)
	if err != nil {
		return "", nil, err
	}
	standings, err := c.daily.Standings(ctx)
	if err != nil {
		return "", nil, err
	}
	return date, standings, nil
}

// Settings returns the player's settings, creating defaults on first access
func (c *Controller) Settings(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error) {
	return c.identity.GetSettings(ctx, playerID)
}

// UpdateSettings applies a partial settings change
func (c *Controller) UpdateSettings(ctx context.Context, playerID model.PlayerID, patch model.SettingsPatch) (*model.PlayerSettings, error) {
	return c.identity.UpdateSettings(ctx, playerID, patch)
}

// SetPersonaPassword protects the player's anonymous history
func (c *Controller) SetPersonaPassword(ctx context.Context, playerID model.PlayerID, password string) error {
	return c.identity.SetPersonaPassword(ctx, playerID, password)
}

// Achievements returns the player's unlocked achievements
func (c *Controller) Achievements(ctx context.Context, playerID model.PlayerID) (model.AchievementRecord, error) {
	return c.achievements.Unlocked(ctx, playerID)
}

// SetGuildChannel binds a guild to the channel games are played in
func (c *Controller) SetGuildChannel(ctx context.Context, guildID model.GuildID, channelID string) (*model.GuildConfig, error) {
	cfg := &model.GuildConfig{
		GuildID:   guildID,
		ChannelID: channelID,
		UpdatedAt: c.clock.Now(),
	}
	if err := c.storage.SaveGuildConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GuildChannel returns the guild's configured channel
func (c *Controller) GuildChannel(ctx context.Context, guildID model.GuildID) (*model.GuildConfig, error) {
	return c.storage.GetGuildConfig(ctx, guildID)
}
