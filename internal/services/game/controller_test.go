package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/dependencies/mocks"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/achievement"
	"github.com/mcoot/wordlebot-go/internal/services/daily"
	"github.com/mcoot/wordlebot-go/internal/services/history"
	"github.com/mcoot/wordlebot-go/internal/services/identity"
	"github.com/mcoot/wordlebot-go/internal/services/session"
	"github.com/mcoot/wordlebot-go/internal/services/words"
	"github.com/mcoot/wordlebot-go/internal/storage"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
	"github.com/mcoot/wordlebot-go/internal/testutil"
)

// flakyStorage fails history appends on demand
type flakyStorage struct {
	storage.Storage
	failAppends bool
}

func (f *flakyStorage) AppendHistory(ctx context.Context, scope model.Scope, rec *model.HistoryRecord) error {
	if f.failAppends {
		return errors.New("backend unavailable")
	}
	return f.Storage.AppendHistory(ctx, scope, rec)
}

type ControllerSuite struct {
	suite.Suite
	backing    *memory.Storage
	flaky      *flakyStorage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.backing = memory.New()
	s.flaky = &flakyStorage{Storage: s.backing}
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()

	wordsSvc := words.New(s.flaky, s.random)
	s.Require().NoError(wordsSvc.LoadWords([]string{"apple", "mango", "zebra"}))

	sessions := session.NewRegistry(s.clock)
	identitySvc := identity.New(s.flaky, s.clock, s.random)
	historySvc := history.New(s.flaky, s.clock, s.random, logger)
	dailySvc := daily.NewCoordinator(s.flaky, wordsSvc, s.clock, logger)
	achievementSvc := achievement.New(s.flaky, s.clock, logger)

	s.controller = NewController(
		wordsSvc, sessions, identitySvc, historySvc, dailySvc, achievementSvc,
		s.flaky, s.clock, s.random, logger,
	)
	s.ctx = context.Background()

	// Generous id queues so finish pipelines never starve
	s.random.QueueString(
		"persona000ab", "AAAA1111", "BBBB2222", "CCCC3333",
		"DDDD4444", "EEEE5555", "FFFF6666", "GGGG7777",
	)
}

// startGame starts a game whose secret is "apple"
func (s *ControllerSuite) startGame(playerID model.PlayerID, guildID model.GuildID) *model.Game {
	s.random.QueueIntn(0) // picks "apple"
	game, err := s.controller.StartGame(s.ctx, playerID, guildID)
	s.Require().NoError(err)
	s.Require().Equal("apple", game.Secret)
	return game
}

// Session lifecycle

func (s *ControllerSuite) TestWinScenario() {
	game := s.startGame("player-1", "guild-1")
	s.Equal(model.MaxAttempts, game.Remaining)

	result, err := s.controller.SubmitGuess(s.ctx, "player-1", "zzzzz")
	s.Require().NoError(err)
	s.Equal(5, result.Game.Remaining)
	s.Equal(model.GameStateActive, result.Game.State)
	for _, mark := range result.Attempt.Marks {
		s.Equal(model.MarkAbsent, mark)
	}
	s.Nil(result.End)

	result, err = s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)
	s.Equal(4, result.Game.Remaining)
	s.Equal(model.GameStateWon, result.Game.State)
	s.Require().NotNil(result.End)
	s.Require().NotNil(result.End.Record)
	s.True(result.End.Record.Won)
	s.False(result.End.PersistenceWarning)

	// Session destroyed on win
	_, err = s.controller.GetGame(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ControllerSuite) TestLossOnExhaustion() {
	s.startGame("player-1", "")

	var result *GuessResult
	var err error
	for i := 0; i < model.MaxAttempts; i++ {
		result, err = s.controller.SubmitGuess(s.ctx, "player-1", "zebra")
		s.Require().NoError(err)
	}

	s.Equal(0, result.Game.Remaining)
	s.Equal(model.GameStateLost, result.Game.State)
	s.Require().NotNil(result.End)
	s.False(result.End.Record.Won)

	_, err = s.controller.GetGame(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ControllerSuite) TestSecondStartRejected() {
	s.startGame("player-1", "")

	s.random.QueueIntn(0)
	_, err := s.controller.StartGame(s.ctx, "player-1", "")
	s.ErrorIs(err, model.ErrSessionActive)
}

func (s *ControllerSuite) TestInvalidGuessLeavesStateUntouched() {
	game := s.startGame("player-1", "")

	for _, bad := range []string{"shrt", "toolong", "app1e", ""} {
		_, err := s.controller.SubmitGuess(s.ctx, "player-1", bad)
		s.ErrorIs(err, model.ErrInvalidGuess)
	}

	s.Equal(model.MaxAttempts, game.Remaining)
	s.Empty(game.Attempts)
}

func (s *ControllerSuite) TestGuessWithoutSession() {
	_, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

// Hints

func (s *ControllerSuite) TestHintCap() {
	s.startGame("player-1", "")

	for i := 0; i < model.MaxHints; i++ {
		s.random.QueueIntn(0)
		result, err := s.controller.RequestHint(s.ctx, "player-1")
		s.Require().NoError(err)
		s.NotEmpty(result.Letter)
		s.Equal(i+1, result.Game.HintsUsed)
	}

	_, err := s.controller.RequestHint(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrHintUnavailable)
}

func (s *ControllerSuite) TestHintDisplayRevealsAllOccurrences() {
	s.startGame("player-1", "")

	// All five positions of "apple" are eligible; position 1 is a p
	s.random.QueueIntn(1)
	result, err := s.controller.RequestHint(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("p", result.Letter)
	s.Equal("_ P P _ _", result.Display)
}

// Abandonment

func (s *ControllerSuite) TestAbandonRecordsLoss() {
	s.startGame("player-1", "guild-1")

	s.Require().NoError(s.controller.AbandonGame(s.ctx, "player-1"))

	records, err := s.backing.GetPlayerHistory(s.ctx, model.ScopeGlobal, "player-1")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.False(records[0].Won)

	_, err = s.controller.GetGame(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ControllerSuite) TestAbandonIsIdempotent() {
	s.startGame("player-1", "")

	s.Require().NoError(s.controller.AbandonGame(s.ctx, "player-1"))
	s.Require().NoError(s.controller.AbandonGame(s.ctx, "player-1"))

	records, err := s.backing.GetPlayerHistory(s.ctx, model.ScopeGlobal, "player-1")
	s.Require().NoError(err)
	s.Len(records, 1)
}

// Scoping and privacy

func (s *ControllerSuite) TestPublicGuildGameRecordedInGuildAndGlobal() {
	s.startGame("player-1", "guild-1")
	_, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	guild, err := s.backing.GetScopeHistory(s.ctx, model.GuildScope("guild-1"))
	s.Require().NoError(err)
	global, err := s.backing.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Require().NoError(err)

	s.Require().Len(guild, 1)
	s.Require().Len(global, 1)
	s.Equal(guild[0].ID, global[0].ID)
}

func (s *ControllerSuite) TestAnonymousGameInvisibleEverywhereElse() {
	anon := true
	_, err := s.controller.UpdateSettings(s.ctx, "player-1", model.SettingsPatch{AnonymousMode: &anon})
	s.Require().NoError(err)

	s.startGame("player-1", "guild-1")
	_, err = s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	global, _ := s.backing.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Empty(global)
	guild, _ := s.backing.GetScopeHistory(s.ctx, model.GuildScope("guild-1"))
	s.Empty(guild)

	entries, err := s.controller.Leaderboard(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Empty(entries)

	// Real-identity history stays empty; anonymous partition holds the game
	real, err := s.controller.History(s.ctx, "player-1", "player-1", "guild-1", false, "", model.HistoryFilter{})
	s.Require().NoError(err)
	s.Empty(real)

	anonRecords, err := s.controller.History(s.ctx, "player-1", "player-1", "", true, "", model.HistoryFilter{})
	s.Require().NoError(err)
	s.Require().Len(anonRecords, 1)
	s.True(anonRecords[0].Anonymous)
	s.NotEqual(model.PersonaID("player-1"), anonRecords[0].PlayerRef)
}

func (s *ControllerSuite) TestOtherPlayersHistoryRequiresPublicSetting() {
	s.startGame("player-1", "")
	_, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	_, err = s.controller.History(s.ctx, "player-2", "player-1", "", false, "", model.HistoryFilter{})
	s.ErrorIs(err, model.ErrPrivateScope)

	public := true
	_, err = s.controller.UpdateSettings(s.ctx, "player-1", model.SettingsPatch{HistoryPublic: &public})
	s.Require().NoError(err)

	records, err := s.controller.History(s.ctx, "player-2", "player-1", "", false, "", model.HistoryFilter{})
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *ControllerSuite) TestAnonymousHistoryPasswordGate() {
	s.Require().NoError(s.controller.SetPersonaPassword(s.ctx, "player-1", "hunter2"))

	_, err := s.controller.History(s.ctx, "player-1", "player-1", "", true, "wrong", model.HistoryFilter{})
	s.ErrorIs(err, model.ErrWrongPersonaPassword)

	_, err = s.controller.History(s.ctx, "player-1", "player-1", "", true, "hunter2", model.HistoryFilter{})
	s.NoError(err)

	// Nobody else gets in, password or not
	_, err = s.controller.History(s.ctx, "player-2", "player-1", "", true, "hunter2", model.HistoryFilter{})
	s.ErrorIs(err, model.ErrPrivateScope)
}

// Record round trip

func (s *ControllerSuite) TestRecordRoundTrip() {
	s.startGame("player-1", "guild-1")

	_, err := s.controller.SubmitGuess(s.ctx, "player-1", "zebra")
	s.Require().NoError(err)
	s.clock.Advance(45 * time.Second)
	result, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	written := result.End.Record
	records, err := s.backing.GetPlayerHistory(s.ctx, model.ScopeGlobal, "player-1")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	read := records[0]

	s.NotEmpty(read.ID)
	s.Equal(written.ID, read.ID)
	s.True(written.Timestamp.Equal(read.Timestamp))
	s.Equal(written.PlayerRef, read.PlayerRef)
	s.Equal(written.Won, read.Won)
	s.Equal(written.Word, read.Word)
	s.Equal(written.AttemptCount, read.AttemptCount)
	s.Equal(written.HintsUsed, read.HintsUsed)
	s.Equal(written.DurationSeconds, read.DurationSeconds)
	s.Equal(written.Guesses, read.Guesses)
}

// Persistence failure

func (s *ControllerSuite) TestPersistenceFailureKeepsOutcome() {
	s.startGame("player-1", "")
	s.flaky.failAppends = true

	result, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.ErrorIs(err, model.ErrPersistence)
	s.Require().NotNil(result)
	s.Equal(model.GameStateWon, result.Game.State)
	s.Require().NotNil(result.End)
	s.True(result.End.PersistenceWarning)
	s.NotNil(result.End.Record)

	// The session is still gone; the outcome stands
	_, err = s.controller.GetGame(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrNoActiveSession)

	// Next ledger use replays the queued write
	s.flaky.failAppends = false
	s.startGame("player-1", "")
	_, err = s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	records, err := s.backing.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Require().NoError(err)
	s.Len(records, 2)
}

// Daily challenge

func (s *ControllerSuite) TestDailyFlow() {
	s.random.QueueIntn(2) // today's word: "zebra"

	game, err := s.controller.StartDailyGame(s.ctx, "player-1", "")
	s.Require().NoError(err)
	s.True(game.Daily)
	s.Equal("zebra", game.Secret)

	_, err = s.controller.SubmitGuess(s.ctx, "player-1", "zebra")
	s.Require().NoError(err)

	played, err := s.controller.HasPlayedDaily(s.ctx, "player-1")
	s.Require().NoError(err)
	s.True(played)

	date, standings, err := s.controller.DailyStandings(s.ctx)
	s.Require().NoError(err)
	s.Equal("2026-08-27", date)
	s.Require().Len(standings, 1)
	s.Equal(model.PlayerID("player-1"), standings[0].PlayerID)
	s.Equal(1, standings[0].Attempts)

	_, err = s.controller.StartDailyGame(s.ctx, "player-1", "")
	s.ErrorIs(err, model.ErrAlreadyPlayedDaily)
}

func (s *ControllerSuite) TestDailyLossConsumesAttempt() {
	s.random.QueueIntn(0) // today's word: "apple"

	_, err := s.controller.StartDailyGame(s.ctx, "player-1", "")
	s.Require().NoError(err)

	for i := 0; i < model.MaxAttempts; i++ {
		_, err = s.controller.SubmitGuess(s.ctx, "player-1", "zebra")
		s.Require().NoError(err)
	}

	_, err = s.controller.StartDailyGame(s.ctx, "player-1", "")
	s.ErrorIs(err, model.ErrAlreadyPlayedDaily)
}

// Achievements

func (s *ControllerSuite) TestFirstWinUnlocksAchievements() {
	s.startGame("player-1", "")

	result, err := s.controller.SubmitGuess(s.ctx, "player-1", "apple")
	s.Require().NoError(err)

	var ids []model.AchievementID
	for _, a := range result.End.NewAchievements {
		ids = append(ids, a.ID)
	}
	s.Contains(ids, model.AchievementID("first_win"))
	s.Contains(ids, model.AchievementID("ace"))
	s.Contains(ids, model.AchievementID("no_hints"))

	held, err := s.controller.Achievements(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Contains(held, model.AchievementID("first_win"))
}

// Guild channel configuration

func (s *ControllerSuite) TestGuildChannelConfig() {
	_, err := s.controller.GuildChannel(s.ctx, "guild-1")
	s.ErrorIs(err, model.ErrGuildNotConfigured)

	cfg, err := s.controller.SetGuildChannel(s.ctx, "guild-1", "channel-42")
	s.Require().NoError(err)
	s.Equal("channel-42", cfg.ChannelID)

	got, err := s.controller.GuildChannel(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal("channel-42", got.ChannelID)
}
