// Package session tracks the single active game per player.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/lock"
	"github.com/mcoot/wordlebot-go/internal/model"
)

// Registry holds active games keyed by player. At most one active game per
// player exists; all mutations of a player's game run under that player's
// lock so concurrent commands cannot interleave.
type Registry struct {
	clock clock.Clock
	locks *lock.Keyed

	mu    sync.RWMutex
	games map[model.PlayerID]*model.Game
}

// NewRegistry creates an empty session registry
func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		clock: clk,
		locks: lock.NewKeyed(),
		games: make(map[model.PlayerID]*model.Game),
	}
}

// WithPlayer runs fn while holding the player's lock. All game mutations for
// a player must go through this.
func (r *Registry) WithPlayer(playerID model.PlayerID, fn func() error) error {
	return r.locks.Do(string(playerID), fn)
}

// Get returns the player's active game, or ErrNoActiveSession
func (r *Registry) Get(playerID model.PlayerID) (*model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[playerID]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return game, nil
}

// Create registers a new active game for the player. Fails with
// ErrSessionActive if one already exists; the existing game is untouched.
func (r *Registry) Create(playerID model.PlayerID, guildID model.GuildID, secret string) (*model.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[playerID]; ok {
		return nil, model.ErrSessionActive
	}

	now := r.clock.Now()
	game := &model.Game{
		PlayerID:      playerID,
		GuildID:       guildID,
		State:         model.GameStateActive,
		Secret:        secret,
		Remaining:     model.MaxAttempts,
		HintedLetters: make(map[string]bool),
		StartedAt:     now,
		UpdatedAt:     now,
	}
	r.games[playerID] = game
	return game, nil
}

// Remove drops the player's game from the registry. A no-op when absent.
func (r *Registry) Remove(playerID model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, playerID)
}

// Count returns the number of active games
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// IdleSince returns the players whose games have not been touched since the
// given cutoff
func (r *Registry) IdleSince(cutoff time.Time) []model.PlayerID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []model.PlayerID
	for playerID, game := range r.games {
		if game.UpdatedAt.Before(cutoff) {
			idle = append(idle, playerID)
		}
	}
	return idle
}

// Abandoner finalizes an idle game on its owner's behalf
type Abandoner interface {
	AbandonGame(ctx context.Context, playerID model.PlayerID) error
}

// Sweeper periodically abandons games idle past the timeout
type Sweeper struct {
	registry  *Registry
	abandoner Abandoner
	clock     clock.Clock
	timeout   time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewSweeper creates a sweeper for the registry. A non-positive timeout
// disables sweeping.
func NewSweeper(registry *Registry, abandoner Abandoner, clk clock.Clock, timeout time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		registry:  registry,
		abandoner: abandoner,
		clock:     clk,
		timeout:   timeout,
		interval:  time.Minute,
		logger:    logger,
	}
}

// Run sweeps until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	if s.timeout <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce abandons every game idle past the timeout
func (s *Sweeper) SweepOnce(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.timeout)
	for _, playerID := range s.registry.IdleSince(cutoff) {
		if err := s.abandoner.AbandonGame(ctx, playerID); err != nil {
			s.logger.Warn("failed to abandon idle game",
				slog.String("player_id", string(playerID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.Info("abandoned idle game",
			slog.String("player_id", string(playerID)),
		)
	}
}
