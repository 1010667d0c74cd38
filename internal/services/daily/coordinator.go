// Package daily runs the shared daily challenge.
package daily

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// WordPicker selects the secret for a new challenge day
type WordPicker interface {
	PickRandom() (string, error)
}

// Coordinator owns the single shared daily challenge state. All players see
// the same word for a given UTC calendar date; rollover happens lazily on
// the first access after midnight.
type Coordinator struct {
	storage storage.Storage
	picker  WordPicker
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.Mutex
	state *model.DailyState
}

// NewCoordinator creates a daily challenge coordinator
func NewCoordinator(storage storage.Storage, picker WordPicker, clk clock.Clock, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		storage: storage,
		picker:  picker,
		clock:   clk,
		logger:  logger,
	}
}

// current loads or rolls the challenge state for today. Caller holds c.mu.
func (c *Coordinator) current(ctx context.Context) (*model.DailyState, error) {
	today := clock.DateKey(c.clock.Now())

	if c.state == nil {
		state, err := c.storage.GetDailyState(ctx)
		if err != nil && !errors.Is(err, model.ErrDailyStateNotFound) {
			return nil, err
		}
		c.state = state
	}

	if c.state != nil && c.state.Date == today {
		return c.state, nil
	}

	// New day: fresh word, participants reset
	word, err := c.picker.PickRandom()
	if err != nil {
		return nil, err
	}
	c.state = &model.DailyState{
		Word:         word,
		Date:         today,
		Participants: make(map[model.PlayerID]model.DailyResult),
	}
	if err := c.storage.SaveDailyState(ctx, c.state); err != nil {
		return nil, err
	}

	c.logger.Info("daily challenge rolled over",
		slog.String("date", today),
	)
	return c.state, nil
}

// Word returns today's challenge word, rolling the day over if needed
func (c *Coordinator) Word(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.current(ctx)
	if err != nil {
		return "", err
	}
	return state.Word, nil
}

// HasPlayed reports whether the player has already finished today's challenge
func (c *Coordinator) HasPlayed(ctx context.Context, playerID model.PlayerID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.current(ctx)
	if err != nil {
		return false, err
	}
	_, played := state.Participants[playerID]
	return played, nil
}

// RecordResult stores a player's finished challenge. Each player gets
// exactly one entry per day; repeats fail with ErrAlreadyPlayedDaily.
func (c *Coordinator) RecordResult(ctx context.Context, playerID model.PlayerID, attempts int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.current(ctx)
	if err != nil {
		return err
	}
	if _, played := state.Participants[playerID]; played {
		return model.ErrAlreadyPlayedDaily
	}

	state.Participants[playerID] = model.DailyResult{
		Attempts:   attempts,
		FinishedAt: c.clock.Now(),
	}
	return c.storage.SaveDailyState(ctx, state)
}

// Standings returns today's participants ordered by fewest attempts, ties
// broken by earliest finish
func (c *Coordinator) Standings(ctx context.Context) ([]model.DailyStanding, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]model.DailyStanding, 0, len(state.Participants))
	for playerID, result := range state.Participants {
		standings = append(standings, model.DailyStanding{
			PlayerID:   playerID,
			Attempts:   result.Attempts,
			FinishedAt: result.FinishedAt,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Attempts != standings[j].Attempts {
			return standings[i].Attempts < standings[j].Attempts
		}
		return standings[i].FinishedAt.Before(standings[j].FinishedAt)
	})
	return standings, nil
}

// Date returns the UTC calendar date of the current challenge
func (c *Coordinator) Date(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.current(ctx)
	if err != nil {
		return "", err
	}
	return state.Date, nil
}
