package words

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordlebot-go/internal/dependencies/mocks"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())
	s.Equal(0, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadWordsFiltersUnplayable() {
	err := s.service.LoadWords([]string{"apple", "cat", "bananas", "Mango", "zeb1a", "  zebra  "})
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(3, s.service.WordCount())
	s.True(s.service.Contains("apple"))
	s.True(s.service.Contains("mango"))
	s.True(s.service.Contains("zebra"))
	s.False(s.service.Contains("cat"))
	s.False(s.service.Contains("zeb1a"))
}

func (s *ServiceSuite) TestLoadWordsEmptyAfterFiltering() {
	err := s.service.LoadWords([]string{"cat", "bananas"})
	s.ErrorIs(err, model.ErrWordListEmpty)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestContainsCaseInsensitive() {
	_ = s.service.LoadWords([]string{"apple"})

	s.True(s.service.Contains("APPLE"))
	s.True(s.service.Contains("Apple"))
}

func (s *ServiceSuite) TestContainsWhenNotLoaded() {
	s.False(s.service.Contains("apple"))
}

func (s *ServiceSuite) TestPickRandomUsesInjectedRandom() {
	_ = s.service.LoadWords([]string{"apple", "mango", "zebra"})

	s.random.QueueIntn(1)
	word, err := s.service.PickRandom()
	s.Require().NoError(err)
	s.Equal("mango", word)
}

func (s *ServiceSuite) TestPickRandomWhenNotLoaded() {
	_, err := s.service.PickRandom()
	s.ErrorIs(err, model.ErrWordListEmpty)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveWordList(s.ctx, []string{"apple", "mango"}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromStorageNotFound() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrWordListNotFound)
}
