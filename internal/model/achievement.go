package model

import "time"

// AchievementID identifies an achievement rule
type AchievementID string

// Achievement describes an unlockable achievement
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
}

// AchievementRecord maps achievement ids to their first-unlock timestamp.
// Write-once per (player, achievement) pair; re-evaluation never overwrites.
type AchievementRecord map[AchievementID]time.Time
