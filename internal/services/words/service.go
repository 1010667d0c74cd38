// Package words manages the playable word list.
package words

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// Service provides word list loading, validation and secret selection
type Service struct {
	storage storage.Storage
	random  random.Random

	mu     sync.RWMutex
	words  []string
	index  map[string]struct{}
	loaded bool
}

// New creates a new words Service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
		index:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads the word list persisted in storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWordList(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads words from a file (one word per line), persisting the
// filtered list to storage for future runs
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	filtered := filterPlayable(words)
	if err := s.storage.SaveWordList(ctx, filtered); err != nil {
		return err
	}

	return s.loadWords(filtered)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(filterPlayable(words))
}

func (s *Service) loadWords(words []string) error {
	if len(words) == 0 {
		return model.ErrWordListEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = words
	s.index = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.index[word] = struct{}{}
	}
	s.loaded = true
	return nil
}

// filterPlayable keeps lowercase-normalized words of exactly the playable
// length consisting solely of ASCII letters
func filterPlayable(words []string) []string {
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		w := strings.ToLower(strings.TrimSpace(word))
		if len(w) != model.WordLength {
			continue
		}
		ok := true
		for i := 0; i < len(w); i++ {
			if w[i] < 'a' || w[i] > 'z' {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// Contains reports whether word is in the playable list (case-insensitive)
func (s *Service) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	_, ok := s.index[strings.ToLower(word)]
	return ok
}

// PickRandom selects a random secret word from the list
func (s *Service) PickRandom() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.words) == 0 {
		return "", model.ErrWordListEmpty
	}
	return s.words[s.random.Intn(len(s.words))], nil
}

// WordCount returns the number of playable words loaded
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// IsLoaded reports whether a word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
