package model

import "time"

// DailyResult is one player's scored attempt at the daily challenge
type DailyResult struct {
	Attempts   int
	FinishedAt time.Time
}

// DailyState is the process-wide daily challenge state. Word and participants
// are reset together, exactly once per calendar day, on first access.
type DailyState struct {
	Word string

	// Date is the calendar day (UTC, 2006-01-02) the word was drawn for
	Date string

	Participants map[PlayerID]DailyResult
}

// DailyStanding is one row of the daily leaderboard
type DailyStanding struct {
	PlayerID   PlayerID
	Attempts   int
	FinishedAt time.Time
}
