package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) record(id string, persona model.PersonaID) *model.HistoryRecord {
	return &model.HistoryRecord{
		ID:              id,
		Timestamp:       time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		PlayerRef:       persona,
		Won:             true,
		Word:            "apple",
		AttemptCount:    3,
		HintsUsed:       1,
		DurationSeconds: 42.5,
		Guesses: []model.Attempt{
			{Word: "zebra", Marks: []model.LetterMark{
				model.MarkAbsent, model.MarkPresent, model.MarkAbsent, model.MarkAbsent, model.MarkPresent,
			}},
		},
		GuildScope: model.ScopeGlobal,
	}
}

// History tests

func (s *StorageSuite) TestAppendHistoryRoundTrip() {
	rec := s.record("AAAA1111", "player-1")

	err := s.storage.AppendHistory(s.ctx, model.ScopeGlobal, rec)
	s.Require().NoError(err)

	records, err := s.storage.GetPlayerHistory(s.ctx, model.ScopeGlobal, "player-1")
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	got := records[0]
	s.Equal(rec.ID, got.ID)
	s.True(rec.Timestamp.Equal(got.Timestamp))
	s.Equal(rec.PlayerRef, got.PlayerRef)
	s.Equal(rec.Won, got.Won)
	s.Equal(rec.Word, got.Word)
	s.Equal(rec.AttemptCount, got.AttemptCount)
	s.Equal(rec.HintsUsed, got.HintsUsed)
	s.Equal(rec.DurationSeconds, got.DurationSeconds)
	s.Equal(rec.Guesses, got.Guesses)
}

func (s *StorageSuite) TestHistoryNewestFirst() {
	_ = s.storage.AppendHistory(s.ctx, model.ScopeGlobal, s.record("AAAA1111", "player-1"))
	_ = s.storage.AppendHistory(s.ctx, model.ScopeGlobal, s.record("BBBB2222", "player-1"))

	records, err := s.storage.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("BBBB2222", records[0].ID)
}

func (s *StorageSuite) TestPlayerHistoryIsolatedFromOtherPlayers() {
	_ = s.storage.AppendHistory(s.ctx, model.ScopeGlobal, s.record("AAAA1111", "player-1"))
	_ = s.storage.AppendHistory(s.ctx, model.ScopeGlobal, s.record("BBBB2222", "player-2"))

	records, err := s.storage.GetPlayerHistory(s.ctx, model.ScopeGlobal, "player-2")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("BBBB2222", records[0].ID)
}

// Settings tests

func (s *StorageSuite) TestSettingsRoundTrip() {
	settings := &model.PlayerSettings{
		PlayerID:              "player-1",
		HistoryPublic:         true,
		AnonymousMode:         true,
		AnonymousPersonaID:    "anon_xyz",
		AnonymousPasswordHash: "hash123",
	}

	s.Require().NoError(s.storage.SaveSettings(s.ctx, settings))

	got, err := s.storage.GetSettings(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(settings.AnonymousPersonaID, got.AnonymousPersonaID)
	s.Equal(settings.AnonymousPasswordHash, got.AnonymousPasswordHash)
	s.True(got.AnonymousMode)
}

func (s *StorageSuite) TestSettingsNotFound() {
	_, err := s.storage.GetSettings(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSettingsNotFound)
}

// Daily state tests

func (s *StorageSuite) TestDailyStateRoundTrip() {
	_, err := s.storage.GetDailyState(s.ctx)
	s.ErrorIs(err, model.ErrDailyStateNotFound)

	state := &model.DailyState{
		Word: "mango",
		Date: "2026-08-27",
		Participants: map[model.PlayerID]model.DailyResult{
			"player-1": {Attempts: 4, FinishedAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)},
		},
	}
	s.Require().NoError(s.storage.SaveDailyState(s.ctx, state))

	got, err := s.storage.GetDailyState(s.ctx)
	s.Require().NoError(err)
	s.Equal("mango", got.Word)
	s.Equal("2026-08-27", got.Date)
	s.Equal(4, got.Participants["player-1"].Attempts)
}

// Achievement tests

func (s *StorageSuite) TestAchievementsRoundTrip() {
	record, err := s.storage.GetAchievements(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(record)

	unlocked := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	err = s.storage.SaveAchievements(s.ctx, "player-1", model.AchievementRecord{"ace": unlocked})
	s.Require().NoError(err)

	got, err := s.storage.GetAchievements(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(unlocked.Equal(got["ace"]))
}

// Guild config tests

func (s *StorageSuite) TestGuildConfigRoundTrip() {
	cfg := &model.GuildConfig{GuildID: "guild-1", ChannelID: "channel-42"}
	s.Require().NoError(s.storage.SaveGuildConfig(s.ctx, cfg))

	got, err := s.storage.GetGuildConfig(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal("channel-42", got.ChannelID)
}

func (s *StorageSuite) TestGuildConfigNotFound() {
	_, err := s.storage.GetGuildConfig(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGuildNotConfigured)
}

// Word list tests

func (s *StorageSuite) TestWordListRoundTrip() {
	_, err := s.storage.GetWordList(s.ctx)
	s.ErrorIs(err, model.ErrWordListNotFound)

	words := []string{"apple", "mango", "zebra"}
	s.Require().NoError(s.storage.SaveWordList(s.ctx, words))

	got, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, got)
}
