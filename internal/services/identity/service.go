// Package identity resolves the persona and scopes a player's games are
// recorded under, and manages the settings that control them.
package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/lock"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

const (
	personaIDLength   = 12
	personaIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service manages player settings and identity scoping. Settings writes for
// one player are serialized through a keyed lock, so first-access creation
// and read-modify-write updates never race each other.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	locks   *lock.Keyed
}

// New creates a new identity Service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		locks:   lock.NewKeyed(),
	}
}

// GetSettings returns the player's settings, creating defaults on first
// access. The anonymous persona id is generated exactly once and stays
// stable for the player's lifetime.
func (s *Service) GetSettings(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error) {
	var settings *model.PlayerSettings
	err := s.locks.Do(string(playerID), func() error {
		var err error
		settings, err = s.getOrCreate(ctx, playerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// getOrCreate loads a player's settings, creating defaults if absent.
// Caller holds the player's lock.
func (s *Service) getOrCreate(ctx context.Context, playerID model.PlayerID) (*model.PlayerSettings, error) {
	settings, err := s.storage.GetSettings(ctx, playerID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, model.ErrSettingsNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	settings = &model.PlayerSettings{
		PlayerID:           playerID,
		AnonymousPersonaID: model.PersonaID("anon_" + s.random.String(personaIDLength, personaIDAlphabet)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.storage.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies a partial update, leaving nil fields unchanged
func (s *Service) UpdateSettings(ctx context.Context, playerID model.PlayerID, patch model.SettingsPatch) (*model.PlayerSettings, error) {
	var settings *model.PlayerSettings
	err := s.locks.Do(string(playerID), func() error {
		var err error
		settings, err = s.getOrCreate(ctx, playerID)
		if err != nil {
			return err
		}

		if patch.StatsPublic != nil {
			settings.StatsPublic = *patch.StatsPublic
		}
		if patch.HistoryPublic != nil {
			settings.HistoryPublic = *patch.HistoryPublic
		}
		if patch.AnonymousMode != nil {
			settings.AnonymousMode = *patch.AnonymousMode
		}
		settings.UpdatedAt = s.clock.Now()

		return s.storage.SaveSettings(ctx, settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// SetPersonaPassword protects the player's anonymous history with a
// password. Only the bcrypt hash is ever stored.
func (s *Service) SetPersonaPassword(ctx context.Context, playerID model.PlayerID, password string) error {
	return s.locks.Do(string(playerID), func() error {
		settings, err := s.getOrCreate(ctx, playerID)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		settings.AnonymousPasswordHash = string(hash)
		settings.UpdatedAt = s.clock.Now()
		return s.storage.SaveSettings(ctx, settings)
	})
}

// VerifyPersonaPassword checks a password against the player's stored hash.
// Succeeds trivially when no password is set.
func (s *Service) VerifyPersonaPassword(ctx context.Context, playerID model.PlayerID, password string) error {
	settings, err := s.GetSettings(ctx, playerID)
	if err != nil {
		return err
	}

	if settings.AnonymousPasswordHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(settings.AnonymousPasswordHash), []byte(password)); err != nil {
		return model.ErrWrongPersonaPassword
	}
	return nil
}

// Resolve decides the persona and partitions a finished game is recorded
// under. Anonymous games go only to the anonymous partition under the
// persona id; public games go to the guild partition (when in a guild) and
// the global one under the real id.
func (s *Service) Resolve(ctx context.Context, playerID model.PlayerID, guildID model.GuildID) (*model.ScopeResolution, error) {
	settings, err := s.GetSettings(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if settings.AnonymousMode {
		return &model.ScopeResolution{
			Persona:   settings.AnonymousPersonaID,
			Anonymous: true,
			Scopes:    []model.Scope{model.ScopeAnonymous},
		}, nil
	}

	scopes := []model.Scope{model.ScopeGlobal}
	if guildID != "" {
		scopes = []model.Scope{model.GuildScope(guildID), model.ScopeGlobal}
	}
	return &model.ScopeResolution{
		Persona: model.PersonaID(playerID),
		Scopes:  scopes,
	}, nil
}
