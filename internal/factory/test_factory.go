package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/wordlebot-go/internal/dependencies/mocks"
	"github.com/mcoot/wordlebot-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := newWithDependencies(store, mockClock, mockRandom, DefaultIdleTimeout, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords loads a small playable word list for testing
func (t *TestApp) LoadTestWords() error {
	return t.WordsService.LoadWords([]string{
		"apple", "mango", "zebra", "plane", "crane",
		"slate", "house", "lemon", "grape", "ocean",
	})
}
