package model

import "time"

// GuildConfig binds a guild to the channel the game is played in
type GuildConfig struct {
	GuildID   GuildID
	ChannelID string
	UpdatedAt time.Time
}
