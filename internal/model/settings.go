package model

import "time"

// PlayerSettings holds a player's privacy and anonymity preferences.
// Created lazily on first access, mutated by settings changes, never deleted.
type PlayerSettings struct {
	PlayerID PlayerID

	StatsPublic   bool
	HistoryPublic bool

	// AnonymousMode routes finished games to the anonymous partition
	AnonymousMode bool

	// AnonymousPersonaID is generated once and stable for the lifetime of the
	// player; it decouples anonymous games from the real identity everywhere.
	AnonymousPersonaID PersonaID

	// AnonymousPasswordHash protects read access to the anonymous history.
	// Empty means no password is set. Always a bcrypt hash, never plaintext.
	AnonymousPasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	StatsPublic   *bool
	HistoryPublic *bool
	AnonymousMode *bool
}
