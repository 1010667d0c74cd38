package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/dependencies/mocks"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGetSettingsCreatesDefaults() {
	s.random.QueueString("abc123def456")

	settings, err := s.service.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("player-1"), settings.PlayerID)
	s.False(settings.StatsPublic)
	s.False(settings.HistoryPublic)
	s.False(settings.AnonymousMode)
	s.Equal(model.PersonaID("anon_abc123def456"), settings.AnonymousPersonaID)
	s.Equal(s.clock.CurrentTime, settings.CreatedAt)
}

func (s *ServiceSuite) TestPersonaIDStableAcrossCalls() {
	s.random.QueueString("abc123def456", "different")

	first, err := s.service.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)

	second, err := s.service.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(first.AnonymousPersonaID, second.AnonymousPersonaID)
}

func (s *ServiceSuite) TestConcurrentFirstAccessMintsOnePersona() {
	// Two ids queued: only the first may ever be consumed
	s.random.QueueString("abc123def456", "zzz999zzz999")

	const callers = 20
	personas := make(chan model.PersonaID, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			settings, err := s.service.GetSettings(s.ctx, "player-1")
			if err != nil {
				errs <- err
				return
			}
			personas <- settings.AnonymousPersonaID
		}()
	}
	wg.Wait()
	close(personas)
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	stored, err := s.storage.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(model.PersonaID("anon_abc123def456"), stored.AnonymousPersonaID)

	// Every caller saw the persisted persona, not a discarded one
	for persona := range personas {
		s.Equal(stored.AnonymousPersonaID, persona)
	}
}

func (s *ServiceSuite) TestUpdateSettingsPartial() {
	s.random.QueueString("abc123def456")

	statsPublic := true
	settings, err := s.service.UpdateSettings(s.ctx, "player-1", model.SettingsPatch{
		StatsPublic: &statsPublic,
	})
	s.Require().NoError(err)

	s.True(settings.StatsPublic)
	s.False(settings.HistoryPublic)
	s.False(settings.AnonymousMode)

	// Unset fields survive later patches
	anon := true
	settings, err = s.service.UpdateSettings(s.ctx, "player-1", model.SettingsPatch{
		AnonymousMode: &anon,
	})
	s.Require().NoError(err)
	s.True(settings.StatsPublic)
	s.True(settings.AnonymousMode)
}

func (s *ServiceSuite) TestPersonaPassword() {
	s.random.QueueString("abc123def456")

	// No password set: any verification succeeds
	s.NoError(s.service.VerifyPersonaPassword(s.ctx, "player-1", "whatever"))

	s.Require().NoError(s.service.SetPersonaPassword(s.ctx, "player-1", "hunter2"))

	s.NoError(s.service.VerifyPersonaPassword(s.ctx, "player-1", "hunter2"))
	s.ErrorIs(s.service.VerifyPersonaPassword(s.ctx, "player-1", "wrong"), model.ErrWrongPersonaPassword)

	// Plaintext is never persisted
	settings, err := s.storage.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)
	s.NotEqual("hunter2", settings.AnonymousPasswordHash)
	s.NotEmpty(settings.AnonymousPasswordHash)
}

func (s *ServiceSuite) TestResolvePublicInGuild() {
	s.random.QueueString("abc123def456")

	res, err := s.service.Resolve(s.ctx, "player-1", "guild-1")
	s.Require().NoError(err)

	s.Equal(model.PersonaID("player-1"), res.Persona)
	s.False(res.Anonymous)
	s.Equal([]model.Scope{model.GuildScope("guild-1"), model.ScopeGlobal}, res.Scopes)
}

func (s *ServiceSuite) TestResolvePublicOutsideGuild() {
	s.random.QueueString("abc123def456")

	res, err := s.service.Resolve(s.ctx, "player-1", "")
	s.Require().NoError(err)

	s.Equal([]model.Scope{model.ScopeGlobal}, res.Scopes)
}

func (s *ServiceSuite) TestResolveAnonymous() {
	s.random.QueueString("abc123def456")

	anon := true
	_, err := s.service.UpdateSettings(s.ctx, "player-1", model.SettingsPatch{AnonymousMode: &anon})
	s.Require().NoError(err)

	res, err := s.service.Resolve(s.ctx, "player-1", "guild-1")
	s.Require().NoError(err)

	s.True(res.Anonymous)
	s.Equal(model.PersonaID("anon_abc123def456"), res.Persona)
	// Anonymous games never touch guild or global partitions
	s.Equal([]model.Scope{model.ScopeAnonymous}, res.Scopes)
}
