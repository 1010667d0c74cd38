package model

import "time"

// PersonaID is the identity a finished game is recorded under: either the
// player's real id or their stable anonymous persona id, never both.
type PersonaID string

// Scope is the visibility partition a history record lives in
type Scope string

const (
	// ScopeGlobal holds every publicly recorded game across all guilds
	ScopeGlobal Scope = "global"

	// ScopeAnonymous holds games played in anonymous mode. Records here are
	// keyed by persona id and excluded from all leaderboards by construction.
	ScopeAnonymous Scope = "anonymous"
)

// GuildScope returns the server-local scope for a guild
func GuildScope(guildID GuildID) Scope {
	return Scope("guild:" + string(guildID))
}

// ScopeResolution decides where a finished game is recorded.
// Produced by the identity service before a ledger append.
type ScopeResolution struct {
	Persona   PersonaID
	Anonymous bool
	Scopes    []Scope
}

// HistoryRecord is the immutable record of one finished game.
// Created exactly once when a session ends and never mutated afterwards.
type HistoryRecord struct {
	ID        string // unique 8-character token
	Timestamp time.Time

	PlayerRef PersonaID
	Anonymous bool

	Won             bool
	Word            string
	AttemptCount    int
	HintsUsed       int
	DurationSeconds float64
	Guesses         []Attempt

	// The guild partition the game belongs to, or ScopeGlobal for records
	// appended to the global partition
	GuildScope Scope
}

// HistoryFilter narrows history queries to a date range.
// Nil bounds are open.
type HistoryFilter struct {
	From *time.Time
	To   *time.Time
}

// Matches reports whether a record falls inside the filter range
func (f HistoryFilter) Matches(rec *HistoryRecord) bool {
	if f.From != nil && rec.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.Timestamp.After(*f.To) {
		return false
	}
	return true
}

// LeaderboardEntry is one aggregated row of a scope leaderboard
type LeaderboardEntry struct {
	PlayerID    PersonaID
	Wins        int
	TotalGames  int
	WinRate     float64
	AvgAttempts float64
}

// PlayerStats summarizes one persona's finished games in a scope
type PlayerStats struct {
	TotalGames      int
	Wins            int
	Losses          int
	WinRate         float64
	CurrentStreak   int // consecutive wins counted from the most recent game
	AvgAttempts     float64
	AvgHints        float64
	AvgDurationSecs float64
	TotalPlaySecs   float64
}
