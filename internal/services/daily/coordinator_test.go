package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/dependencies/mocks"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
	"github.com/mcoot/wordlebot-go/internal/testutil"
)

// queuePicker feeds deterministic secrets to the coordinator
type queuePicker struct {
	words []string
}

func (p *queuePicker) PickRandom() (string, error) {
	if len(p.words) == 0 {
		return "", model.ErrWordListEmpty
	}
	word := p.words[0]
	p.words = p.words[1:]
	return word, nil
}

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	picker      *queuePicker
	coordinator *Coordinator
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
	s.picker = &queuePicker{words: []string{"apple", "mango", "zebra"}}
	s.coordinator = NewCoordinator(s.storage, s.picker, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CoordinatorSuite) TestFirstAccessInitializesState() {
	word, err := s.coordinator.Word(s.ctx)
	s.Require().NoError(err)
	s.Equal("apple", word)

	date, err := s.coordinator.Date(s.ctx)
	s.Require().NoError(err)
	s.Equal("2026-08-27", date)

	// Persisted for restart survival
	state, err := s.storage.GetDailyState(s.ctx)
	s.Require().NoError(err)
	s.Equal("apple", state.Word)
}

func (s *CoordinatorSuite) TestSameWordWithinDay() {
	first, _ := s.coordinator.Word(s.ctx)
	s.clock.Advance(6 * time.Hour)
	second, _ := s.coordinator.Word(s.ctx)
	s.Equal(first, second)
}

func (s *CoordinatorSuite) TestRolloverAtMidnightUTC() {
	word, _ := s.coordinator.Word(s.ctx)
	s.Equal("apple", word)

	s.Require().NoError(s.coordinator.RecordResult(s.ctx, "player-1", 3))

	// Cross midnight UTC
	s.clock.Set(time.Date(2026, 8, 28, 0, 0, 1, 0, time.UTC))

	word, err := s.coordinator.Word(s.ctx)
	s.Require().NoError(err)
	s.Equal("mango", word)

	// Participants reset with the new day
	played, err := s.coordinator.HasPlayed(s.ctx, "player-1")
	s.Require().NoError(err)
	s.False(played)
}

func (s *CoordinatorSuite) TestLoadsPersistedStateOnStartup() {
	s.Require().NoError(s.storage.SaveDailyState(s.ctx, &model.DailyState{
		Word:         "ocean",
		Date:         "2026-08-27",
		Participants: map[model.PlayerID]model.DailyResult{"player-1": {Attempts: 2}},
	}))

	fresh := NewCoordinator(s.storage, s.picker, s.clock, testutil.NopLogger())

	word, err := fresh.Word(s.ctx)
	s.Require().NoError(err)
	s.Equal("ocean", word)

	played, err := fresh.HasPlayed(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(played)
}

func (s *CoordinatorSuite) TestRecordResultOncePerDay() {
	s.Require().NoError(s.coordinator.RecordResult(s.ctx, "player-1", 4))

	err := s.coordinator.RecordResult(s.ctx, "player-1", 2)
	s.ErrorIs(err, model.ErrAlreadyPlayedDaily)

	// First result stands
	standings, err := s.coordinator.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 1)
	s.Equal(4, standings[0].Attempts)
}

func (s *CoordinatorSuite) TestStandingsOrdering() {
	s.Require().NoError(s.coordinator.RecordResult(s.ctx, "player-1", 4))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.coordinator.RecordResult(s.ctx, "player-2", 2))
	s.clock.Advance(time.Minute)
	s.Require().NoError(s.coordinator.RecordResult(s.ctx, "player-3", 2))

	standings, err := s.coordinator.Standings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 3)

	// Fewest attempts first, earliest finish breaking the tie
	s.Equal(model.PlayerID("player-2"), standings[0].PlayerID)
	s.Equal(model.PlayerID("player-3"), standings[1].PlayerID)
	s.Equal(model.PlayerID("player-1"), standings[2].PlayerID)
}
