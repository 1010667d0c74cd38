package request

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	Word string `json:"word"`
}

// UpdateSettingsRequest is the request body for a partial settings change
type UpdateSettingsRequest struct {
	StatsPublic   *bool `json:"stats_public,omitempty"`
	HistoryPublic *bool `json:"history_public,omitempty"`
	AnonymousMode *bool `json:"anonymous_mode,omitempty"`
}

// PersonaPasswordRequest is the request body for setting the anonymous
// persona password
type PersonaPasswordRequest struct {
	Password string `json:"password"`
}

// GuildChannelRequest is the request body for binding a guild channel
type GuildChannelRequest struct {
	ChannelID string `json:"channel_id"`
}
