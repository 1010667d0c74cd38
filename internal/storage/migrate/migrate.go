// Package migrate imports the legacy v0 ledger blob into versioned storage.
//
// The v0 format is a single JSON document of users mapped to game arrays,
// with per-letter results encoded as color squares. Conversion runs once at
// startup, separate from the normal read/write paths.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// SchemaVersion is the ledger schema produced by this package
const SchemaVersion = 1

// legacyFile is the v0 on-disk layout
type legacyFile struct {
	Users map[string][]legacyGame `json:"users"`
}

type legacyGame struct {
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Won       bool          `json:"won"`
	Word      string        `json:"word"`
	Hints     int           `json:"hints"`
	Duration  float64       `json:"duration"`
	Guesses   []legacyGuess `json:"guesses"`
}

type legacyGuess struct {
	Word   string   `json:"word"`
	Result []string `json:"result"`
}

// v0 encoded per-letter results as emoji squares
const (
	legacyCorrect = "\U0001F7E9" // green square
	legacyPresent = "\U0001F7E8" // yellow square
	legacyAbsent  = "⬛"     // black square
)

// markFromLegacy converts a v0 result square to a LetterMark
func markFromLegacy(s string) (model.LetterMark, error) {
	switch s {
	case legacyCorrect:
		return model.MarkCorrect, nil
	case legacyPresent:
		return model.MarkPresent, nil
	case legacyAbsent:
		return model.MarkAbsent, nil
	default:
		return "", fmt.Errorf("unknown legacy result symbol %q", s)
	}
}

// parseLegacyTimestamp parses the v0 local-time ISO timestamp
func parseLegacyTimestamp(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999",
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable legacy timestamp %q", s)
}

// ConvertGame converts one v0 game entry to a v1 HistoryRecord.
// Legacy data predates guild scoping and anonymous play, so every converted
// record lands in the global partition under the real identity.
func ConvertGame(userID string, g legacyGame) (*model.HistoryRecord, error) {
	ts, err := parseLegacyTimestamp(g.Timestamp)
	if err != nil {
		return nil, err
	}

	guesses := make([]model.Attempt, 0, len(g.Guesses))
	for _, lg := range g.Guesses {
		marks := make([]model.LetterMark, 0, len(lg.Result))
		for _, sym := range lg.Result {
			mark, err := markFromLegacy(sym)
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.ID, err)
			}
			marks = append(marks, mark)
		}
		guesses = append(guesses, model.Attempt{Word: strings.ToLower(lg.Word), Marks: marks})
	}

	return &model.HistoryRecord{
		ID:              g.ID,
		Timestamp:       ts,
		PlayerRef:       model.PersonaID(userID),
		Anonymous:       false,
		Won:             g.Won,
		Word:            strings.ToLower(g.Word),
		AttemptCount:    len(g.Guesses),
		HintsUsed:       g.Hints,
		DurationSeconds: g.Duration,
		Guesses:         guesses,
		GuildScope:      model.ScopeGlobal,
	}, nil
}

// Import reads a v0 ledger document and appends every game to the global
// partition, oldest first so storage stays newest-first. Returns the number
// of imported records. Entries that fail to convert are skipped and logged,
// never imported half-converted.
func Import(ctx context.Context, st storage.Storage, r io.Reader, logger *slog.Logger) (int, error) {
	var file legacyFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return 0, fmt.Errorf("decode legacy ledger: %w", err)
	}

	imported := 0
	for userID, games := range file.Users {
		// v0 arrays are newest-first; walk backwards to preserve order
		for i := len(games) - 1; i >= 0; i-- {
			rec, err := ConvertGame(userID, games[i])
			if err != nil {
				logger.Warn("skipping unconvertible legacy game",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				continue
			}
			if err := st.AppendHistory(ctx, model.ScopeGlobal, rec); err != nil {
				return imported, fmt.Errorf("append legacy record %s: %w", rec.ID, err)
			}
			imported++
		}
	}

	logger.Info("legacy ledger imported",
		slog.Int("records", imported),
		slog.Int("schema_version", SchemaVersion),
	)
	return imported, nil
}
