// Package history maintains the append-only ledger of finished games and
// the aggregates derived from it.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

const (
	recordIDLength   = 8
	recordIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// pendingAppend is a ledger write that failed and awaits retry
type pendingAppend struct {
	scope  model.Scope
	record *model.HistoryRecord
}

// Service owns ledger appends and reads
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu      sync.Mutex
	pending []pendingAppend
}

// New creates a new history Service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Record appends a finished game to every scope in the resolution, under a
// single fresh record id. When a backend write fails the record is still
// returned and the failed appends are queued for retry; the caller gets
// ErrPersistence to surface as a warning, never as a rollback.
func (s *Service) Record(ctx context.Context, game *model.Game, res *model.ScopeResolution) (*model.HistoryRecord, error) {
	s.RetryPending(ctx)

	now := s.clock.Now()
	rec := &model.HistoryRecord{
		ID:              s.random.String(recordIDLength, recordIDAlphabet),
		Timestamp:       now,
		PlayerRef:       res.Persona,
		Anonymous:       res.Anonymous,
		Won:             game.Won(),
		Word:            game.Secret,
		AttemptCount:    game.AttemptCount(),
		HintsUsed:       game.HintsUsed,
		DurationSeconds: game.Duration(now).Seconds(),
		Guesses:         game.Attempts,
	}

	var failed bool
	for _, scope := range res.Scopes {
		scoped := *rec
		scoped.GuildScope = scope
		if err := s.storage.AppendHistory(ctx, scope, &scoped); err != nil {
			failed = true
			s.logger.Warn("ledger append failed, queueing for retry",
				slog.String("record_id", rec.ID),
				slog.String("scope", string(scope)),
				slog.String("error", err.Error()),
			)
			s.mu.Lock()
			s.pending = append(s.pending, pendingAppend{scope: scope, record: &scoped})
			s.mu.Unlock()
		}
	}

	if failed {
		return rec, fmt.Errorf("recording game %s: %w", rec.ID, model.ErrPersistence)
	}
	return rec, nil
}

// RetryPending replays queued ledger appends. Writes that fail again are
// re-queued.
func (s *Service) RetryPending(ctx context.Context) {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range queued {
		if err := s.storage.AppendHistory(ctx, p.scope, p.record); err != nil {
			s.mu.Lock()
			s.pending = append(s.pending, p)
			s.mu.Unlock()
			continue
		}
		s.logger.Info("queued ledger append succeeded on retry",
			slog.String("record_id", p.record.ID),
			slog.String("scope", string(p.scope)),
		)
	}
}

// PendingCount returns the number of appends awaiting retry
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// PlayerGames returns a persona's records in a scope, newest first,
// optionally narrowed to a date range
func (s *Service) PlayerGames(ctx context.Context, scope model.Scope, persona model.PersonaID, filter model.HistoryFilter) ([]*model.HistoryRecord, error) {
	records, err := s.storage.GetPlayerHistory(ctx, scope, persona)
	if err != nil {
		return nil, err
	}

	filtered := make([]*model.HistoryRecord, 0, len(records))
	for _, rec := range records {
		if filter.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// RecentGames returns the latest records in a scope, newest first
func (s *Service) RecentGames(ctx context.Context, scope model.Scope, limit int) ([]*model.HistoryRecord, error) {
	records, err := s.storage.GetScopeHistory(ctx, scope)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Leaderboard aggregates a scope's records per persona, ranked by wins then
// total games. Anonymous records never contribute.
func (s *Service) Leaderboard(ctx context.Context, scope model.Scope) ([]model.LeaderboardEntry, error) {
	records, err := s.storage.GetScopeHistory(ctx, scope)
	if err != nil {
		return nil, err
	}

	type agg struct {
		wins     int
		total    int
		attempts int
	}
	byPlayer := make(map[model.PersonaID]*agg)
	var order []model.PersonaID

	for _, rec := range records {
		if rec.Anonymous {
			continue
		}
		a, ok := byPlayer[rec.PlayerRef]
		if !ok {
			a = &agg{}
			byPlayer[rec.PlayerRef] = a
			order = append(order, rec.PlayerRef)
		}
		a.total++
		a.attempts += rec.AttemptCount
		if rec.Won {
			a.wins++
		}
	}

	entries := make([]model.LeaderboardEntry, 0, len(order))
	for _, persona := range order {
		a := byPlayer[persona]
		entries = append(entries, model.LeaderboardEntry{
			PlayerID:    persona,
			Wins:        a.wins,
			TotalGames:  a.total,
			WinRate:     float64(a.wins) / float64(a.total),
			AvgAttempts: float64(a.attempts) / float64(a.total),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].TotalGames > entries[j].TotalGames
	})
	return entries, nil
}

// Stats summarizes a persona's games in a scope
func (s *Service) Stats(ctx context.Context, scope model.Scope, persona model.PersonaID, filter model.HistoryFilter) (*model.PlayerStats, error) {
	records, err := s.PlayerGames(ctx, scope, persona, filter)
	if err != nil {
		return nil, err
	}

	stats := &model.PlayerStats{}
	var attempts, hints int
	streakBroken := false

	// Records are newest first; the streak counts from the top
	for _, rec := range records {
		stats.TotalGames++
		if rec.Won {
			stats.Wins++
			if !streakBroken {
				stats.CurrentStreak++
			}
		} else {
			stats.Losses++
			streakBroken = true
		}
		attempts += rec.AttemptCount
		hints += rec.HintsUsed
		stats.TotalPlaySecs += rec.DurationSeconds
	}

	if stats.TotalGames > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalGames)
		stats.AvgAttempts = float64(attempts) / float64(stats.TotalGames)
		stats.AvgHints = float64(hints) / float64(stats.TotalGames)
		stats.AvgDurationSecs = stats.TotalPlaySecs / float64(stats.TotalGames)
	}
	return stats, nil
}

// TotalGames counts every game a player has finished across the global and
// anonymous partitions. Guild partitions duplicate global records, so they
// are not counted.
func (s *Service) TotalGames(ctx context.Context, playerID model.PlayerID, anonymousPersona model.PersonaID) (int, error) {
	public, err := s.storage.GetPlayerHistory(ctx, model.ScopeGlobal, model.PersonaID(playerID))
	if err != nil {
		return 0, err
	}
	anon, err := s.storage.GetPlayerHistory(ctx, model.ScopeAnonymous, anonymousPersona)
	if err != nil {
		return 0, err
	}
	return len(public) + len(anon), nil
}
