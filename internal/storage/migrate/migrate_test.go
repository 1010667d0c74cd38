package migrate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
	"github.com/mcoot/wordlebot-go/internal/testutil"
)

type MigrateSuite struct {
	suite.Suite
	storage *memory.Storage
	ctx     context.Context
}

func TestMigrateSuite(t *testing.T) {
	suite.Run(t, new(MigrateSuite))
}

func (s *MigrateSuite) SetupTest() {
	s.storage = memory.New()
	s.ctx = context.Background()
}

const legacyDoc = `{
  "users": {
    "123456789": [
      {
        "id": "BBBB2222",
        "timestamp": "2024-05-02T09:15:00.123456",
        "won": false,
        "word": "MANGO",
        "hints": 0,
        "duration": 301.7,
        "guesses": [
          {"word": "ZEBRA", "result": ["⬛", "⬛", "⬛", "⬛", "🟨"]}
        ]
      },
      {
        "id": "AAAA1111",
        "timestamp": "2024-05-01T12:34:56.789012",
        "won": true,
        "word": "APPLE",
        "hints": 1,
        "duration": 83.2,
        "guesses": [
          {"word": "PLANE", "result": ["🟨", "🟨", "⬛", "⬛", "🟩"]},
          {"word": "APPLE", "result": ["🟩", "🟩", "🟩", "🟩", "🟩"]}
        ]
      }
    ]
  }
}`

func (s *MigrateSuite) TestImportConvertsAndPreservesOrder() {
	count, err := Import(s.ctx, s.storage, strings.NewReader(legacyDoc), testutil.NopLogger())
	s.Require().NoError(err)
	s.Equal(2, count)

	records, err := s.storage.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	// Newest first, matching the v0 array order
	s.Equal("BBBB2222", records[0].ID)
	s.Equal("AAAA1111", records[1].ID)

	won := records[1]
	s.True(won.Won)
	s.Equal("apple", won.Word)
	s.Equal(model.PersonaID("123456789"), won.PlayerRef)
	s.False(won.Anonymous)
	s.Equal(2, won.AttemptCount)
	s.Equal(1, won.HintsUsed)
	s.InDelta(83.2, won.DurationSeconds, 0.001)
	s.Equal(model.ScopeGlobal, won.GuildScope)

	s.Require().Len(won.Guesses, 2)
	s.Equal("plane", won.Guesses[0].Word)
	s.Equal([]model.LetterMark{
		model.MarkPresent, model.MarkPresent, model.MarkAbsent, model.MarkAbsent, model.MarkCorrect,
	}, won.Guesses[0].Marks)
}

func (s *MigrateSuite) TestImportIndexesByPlayer() {
	_, err := Import(s.ctx, s.storage, strings.NewReader(legacyDoc), testutil.NopLogger())
	s.Require().NoError(err)

	records, err := s.storage.GetPlayerHistory(s.ctx, model.ScopeGlobal, "123456789")
	s.Require().NoError(err)
	s.Len(records, 2)
}

func (s *MigrateSuite) TestImportSkipsUnconvertibleEntries() {
	doc := `{
  "users": {
    "42": [
      {"id": "GOOD1111", "timestamp": "2024-05-01T12:00:00", "won": true, "word": "apple",
       "hints": 0, "duration": 10, "guesses": []},
      {"id": "BAD22222", "timestamp": "not-a-timestamp", "won": true, "word": "apple",
       "hints": 0, "duration": 10, "guesses": []}
    ]
  }
}`

	count, err := Import(s.ctx, s.storage, strings.NewReader(doc), testutil.NopLogger())
	s.Require().NoError(err)
	s.Equal(1, count)

	records, err := s.storage.GetScopeHistory(s.ctx, model.ScopeGlobal)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("GOOD1111", records[0].ID)
}

func (s *MigrateSuite) TestImportRejectsMalformedDocument() {
	_, err := Import(s.ctx, s.storage, strings.NewReader("{not json"), testutil.NopLogger())
	s.Error(err)
}

func (s *MigrateSuite) TestImportUnknownResultSymbolSkipsGame() {
	doc := `{
  "users": {
    "42": [
      {"id": "ODDD1111", "timestamp": "2024-05-01T12:00:00", "won": true, "word": "apple",
       "hints": 0, "duration": 10,
       "guesses": [{"word": "apple", "result": ["?", "?", "?", "?", "?"]}]}
    ]
  }
}`

	count, err := Import(s.ctx, s.storage, strings.NewReader(doc), testutil.NopLogger())
	s.Require().NoError(err)
	s.Zero(count)
}
