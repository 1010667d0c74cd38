package response

import (
	"time"

	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/game"
)

// Attempt is one scored guess in API responses
type Attempt struct {
	Word  string   `json:"word"`
	Marks []string `json:"marks"`
}

// AttemptFromModel converts a model.Attempt
func AttemptFromModel(a model.Attempt) Attempt {
	marks := make([]string, 0, len(a.Marks))
	for _, m := range a.Marks {
		marks = append(marks, string(m))
	}
	return Attempt{Word: a.Word, Marks: marks}
}

// GameState is the active-session view. The secret word is never included;
// it only surfaces through the history record once the game is over.
type GameState struct {
	State       string    `json:"state"`
	Attempts    []Attempt `json:"attempts"`
	Remaining   int       `json:"remaining"`
	HintsUsed   int       `json:"hints_used"`
	HintDisplay string    `json:"hint_display"`
	Daily       bool      `json:"daily,omitempty"`
	StartedAt   time.Time `json:"started_at"`
}

// GameStateFromModel converts a model.Game
func GameStateFromModel(g *model.Game) GameState {
	attempts := make([]Attempt, 0, len(g.Attempts))
	for _, a := range g.Attempts {
		attempts = append(attempts, AttemptFromModel(a))
	}
	return GameState{
		State:       string(g.State),
		Attempts:    attempts,
		Remaining:   g.Remaining,
		HintsUsed:   g.HintsUsed,
		HintDisplay: g.HintDisplay(),
		Daily:       g.Daily,
		StartedAt:   g.StartedAt,
	}
}

// HistoryRecord is one finished game in API responses
type HistoryRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Won             bool      `json:"won"`
	Word            string    `json:"word"`
	AttemptCount    int       `json:"attempt_count"`
	HintsUsed       int       `json:"hints_used"`
	DurationSeconds float64   `json:"duration_seconds"`
	Guesses         []Attempt `json:"guesses"`
	Anonymous       bool      `json:"anonymous,omitempty"`
}

// HistoryRecordFromModel converts a model.HistoryRecord
func HistoryRecordFromModel(rec *model.HistoryRecord) HistoryRecord {
	guesses := make([]Attempt, 0, len(rec.Guesses))
	for _, g := range rec.Guesses {
		guesses = append(guesses, AttemptFromModel(g))
	}
	return HistoryRecord{
		ID:              rec.ID,
		Timestamp:       rec.Timestamp,
		Won:             rec.Won,
		Word:            rec.Word,
		AttemptCount:    rec.AttemptCount,
		HintsUsed:       rec.HintsUsed,
		DurationSeconds: rec.DurationSeconds,
		Guesses:         guesses,
		Anonymous:       rec.Anonymous,
	}
}

// HistoryRecordsFromModel converts a record slice
func HistoryRecordsFromModel(records []*model.HistoryRecord) []HistoryRecord {
	out := make([]HistoryRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, HistoryRecordFromModel(rec))
	}
	return out
}

// Achievement is one unlocked achievement
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AchievementFromModel converts a model.Achievement
func AchievementFromModel(a model.Achievement) Achievement {
	return Achievement{
		ID:          string(a.ID),
		Name:        a.Name,
		Description: a.Description,
	}
}

// EndResult summarizes a finished game
type EndResult struct {
	Record          HistoryRecord `json:"record"`
	NewAchievements []Achievement `json:"new_achievements"`

	// PersistenceWarning is true when the outcome stands but its ledger
	// write is still pending retry
	PersistenceWarning bool `json:"persistence_warning,omitempty"`
}

// EndResultFromModel converts a game.EndResult
func EndResultFromModel(end *game.EndResult) *EndResult {
	if end == nil {
		return nil
	}
	achievements := make([]Achievement, 0, len(end.NewAchievements))
	for _, a := range end.NewAchievements {
		achievements = append(achievements, AchievementFromModel(a))
	}
	out := &EndResult{
		NewAchievements:    achievements,
		PersistenceWarning: end.PersistenceWarning,
	}
	if end.Record != nil {
		out.Record = HistoryRecordFromModel(end.Record)
	}
	return out
}

// GuessResult is the response for a submitted guess
type GuessResult struct {
	Game    GameState  `json:"game"`
	Attempt Attempt    `json:"attempt"`
	End     *EndResult `json:"end,omitempty"`
}

// GuessResultFromModel converts a game.GuessResult
func GuessResultFromModel(result *game.GuessResult) GuessResult {
	return GuessResult{
		Game:    GameStateFromModel(result.Game),
		Attempt: AttemptFromModel(result.Attempt),
		End:     EndResultFromModel(result.End),
	}
}

// HintResult is the response for a hint request
type HintResult struct {
	Game    GameState `json:"game"`
	Letter  string    `json:"letter"`
	Display string    `json:"display"`
}

// LeaderboardEntry is one aggregated leaderboard row
type LeaderboardEntry struct {
	PlayerID    string  `json:"player_id"`
	Wins        int     `json:"wins"`
	TotalGames  int     `json:"total_games"`
	WinRate     float64 `json:"win_rate"`
	AvgAttempts float64 `json:"avg_attempts"`
}

// LeaderboardFromModel converts leaderboard entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntry{
			PlayerID:    string(e.PlayerID),
			Wins:        e.Wins,
			TotalGames:  e.TotalGames,
			WinRate:     e.WinRate,
			AvgAttempts: e.AvgAttempts,
		})
	}
	return out
}

// PlayerStats is a persona's aggregate view
type PlayerStats struct {
	TotalGames      int     `json:"total_games"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	CurrentStreak   int     `json:"current_streak"`
	AvgAttempts     float64 `json:"avg_attempts"`
	AvgHints        float64 `json:"avg_hints"`
	AvgDurationSecs float64 `json:"avg_duration_seconds"`
	TotalPlaySecs   float64 `json:"total_play_seconds"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		TotalGames:      s.TotalGames,
		Wins:            s.Wins,
		Losses:          s.Losses,
		WinRate:         s.WinRate,
		CurrentStreak:   s.CurrentStreak,
		AvgAttempts:     s.AvgAttempts,
		AvgHints:        s.AvgHints,
		AvgDurationSecs: s.AvgDurationSecs,
		TotalPlaySecs:   s.TotalPlaySecs,
	}
}

// DailyStanding is one row of the daily ranking
type DailyStanding struct {
	PlayerID   string    `json:"player_id"`
	Attempts   int       `json:"attempts"`
	FinishedAt time.Time `json:"finished_at"`
}

// DailyStatus is the daily challenge overview
type DailyStatus struct {
	Date      string          `json:"date"`
	Played    bool            `json:"played"`
	Standings []DailyStanding `json:"standings"`
}

// Settings is a player's settings view. The password hash never leaves the
// server; only whether a password is set.
type Settings struct {
	StatsPublic   bool      `json:"stats_public"`
	HistoryPublic bool      `json:"history_public"`
	AnonymousMode bool      `json:"anonymous_mode"`
	PersonaID     string    `json:"anonymous_persona_id"`
	HasPassword   bool      `json:"has_persona_password"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SettingsFromModel converts model.PlayerSettings
func SettingsFromModel(s *model.PlayerSettings) Settings {
	return Settings{
		StatsPublic:   s.StatsPublic,
		HistoryPublic: s.HistoryPublic,
		AnonymousMode: s.AnonymousMode,
		PersonaID:     string(s.AnonymousPersonaID),
		HasPassword:   s.AnonymousPasswordHash != "",
		UpdatedAt:     s.UpdatedAt,
	}
}

// UnlockedAchievement pairs an achievement with its unlock time
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}

// GuildChannel is a guild's channel binding
type GuildChannel struct {
	GuildID   string    `json:"guild_id"`
	ChannelID string    `json:"channel_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GuildChannelFromModel converts model.GuildConfig
func GuildChannelFromModel(cfg *model.GuildConfig) GuildChannel {
	return GuildChannel{
		GuildID:   string(cfg.GuildID),
		ChannelID: cfg.ChannelID,
		UpdatedAt: cfg.UpdatedAt,
	}
}
