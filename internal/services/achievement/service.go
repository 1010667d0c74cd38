// Package achievement evaluates unlock rules when games finish.
package achievement

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

const (
	FirstWin  model.AchievementID = "first_win"
	Ace       model.AchievementID = "ace"
	Speedrun  model.AchievementID = "speedrun"
	NoHints   model.AchievementID = "no_hints"
	LastGasp  model.AchievementID = "last_gasp"
	Centurion model.AchievementID = "centurion"
)

const speedrunThresholdSecs = 30

// Catalog lists every achievement in display order
var Catalog = []model.Achievement{
	{ID: FirstWin, Name: "First Win", Description: "Win your first game"},
	{ID: Ace, Name: "Ace", Description: "Win on the first guess"},
	{ID: Speedrun, Name: "Speedrun", Description: "Win in under 30 seconds"},
	{ID: NoHints, Name: "Purist", Description: "Win without using any hints"},
	{ID: LastGasp, Name: "Last Gasp", Description: "Win on the final guess"},
	{ID: Centurion, Name: "Centurion", Description: "Finish 100 games"},
}

// Outcome is the finished-game summary the rules are evaluated against
type Outcome struct {
	Won             bool
	AttemptCount    int
	HintsUsed       int
	DurationSeconds float64

	// TotalGames is the player's lifetime finished-game count including
	// this game
	TotalGames int
}

// rule returns true when the outcome unlocks the achievement
type rule func(o Outcome) bool

var rules = map[model.AchievementID]rule{
	FirstWin: func(o Outcome) bool { return o.Won },
	Ace:      func(o Outcome) bool { return o.Won && o.AttemptCount == 1 },
	Speedrun: func(o Outcome) bool { return o.Won && o.DurationSeconds < speedrunThresholdSecs },
	NoHints:  func(o Outcome) bool { return o.Won && o.HintsUsed == 0 },
	LastGasp: func(o Outcome) bool { return o.Won && o.AttemptCount == model.MaxAttempts },
	Centurion: func(o Outcome) bool {
		return o.TotalGames >= 100
	},
}

// Service evaluates achievement unlocks. Unlocks are keyed by the real
// player id regardless of anonymous mode, and each timestamp is write-once.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new achievement Service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Evaluate runs every rule against the outcome and persists new unlocks.
// Returns the newly unlocked achievements in catalog order; already-held
// achievements are never re-issued or re-stamped.
func (s *Service) Evaluate(ctx context.Context, playerID model.PlayerID, outcome Outcome) ([]model.Achievement, error) {
	held, err := s.storage.GetAchievements(ctx, playerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var unlocked []model.Achievement
	for _, ach := range Catalog {
		if _, ok := held[ach.ID]; ok {
			continue
		}
		if rules[ach.ID](outcome) {
			held[ach.ID] = now
			unlocked = append(unlocked, ach)
		}
	}

	if len(unlocked) == 0 {
		return nil, nil
	}

	if err := s.storage.SaveAchievements(ctx, playerID, held); err != nil {
		return nil, err
	}

	for _, ach := range unlocked {
		s.logger.Info("achievement unlocked",
			slog.String("player_id", string(playerID)),
			slog.String("achievement", string(ach.ID)),
		)
	}
	return unlocked, nil
}

// Unlocked returns the player's achievements with their unlock timestamps
func (s *Service) Unlocked(ctx context.Context, playerID model.PlayerID) (model.AchievementRecord, error) {
	return s.storage.GetAchievements(ctx, playerID)
}
