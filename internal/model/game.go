package model

import (
	"strings"
	"time"
)

// Game rules
const (
	WordLength  = 5
	MaxAttempts = 6
	MaxHints    = 3
)

// PlayerID uniquely identifies a player across the system.
// It is the identifier assigned by the chat platform.
type PlayerID string

// GuildID identifies the server/community a game was played in.
// Empty for games started outside any guild context.
type GuildID string

// GameState represents the lifecycle phase of a game session
type GameState string

const (
	GameStateActive    GameState = "active"
	GameStateWon       GameState = "won"
	GameStateLost      GameState = "lost"
	GameStateAbandoned GameState = "abandoned"
)

// LetterMark is the per-position score of a guessed letter
type LetterMark string

const (
	MarkCorrect LetterMark = "correct" // right letter, right position
	MarkPresent LetterMark = "present" // right letter, wrong position
	MarkAbsent  LetterMark = "absent"  // letter not in the word
)

// Attempt is one scored guess
type Attempt struct {
	Word  string
	Marks []LetterMark // always WordLength entries
}

// Game represents a single active session for one player.
// Mutated only by the owning player's actions, serialized by the registry.
type Game struct {
	PlayerID PlayerID
	GuildID  GuildID
	State    GameState

	// The hidden answer, immutable once chosen
	Secret string

	Attempts  []Attempt
	Remaining int // starts at MaxAttempts, decrements per guess
	HintsUsed int // 0..MaxHints

	// Daily marks a session playing today's shared challenge word
	Daily bool

	// Positions already guessed exactly right
	CorrectPositions [WordLength]bool

	// Letters revealed through hints; once added, never removed
	HintedLetters map[string]bool

	StartedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true once the game has left the Active state.
// Terminal games never return to Active.
func (g *Game) IsTerminal() bool {
	return g.State != GameStateActive
}

// Won reports whether the game ended in a win
func (g *Game) Won() bool {
	return g.State == GameStateWon
}

// AttemptCount returns the number of guesses made so far
func (g *Game) AttemptCount() int {
	return len(g.Attempts)
}

// Duration returns the elapsed play time as of now
func (g *Game) Duration(now time.Time) time.Duration {
	return now.Sub(g.StartedAt)
}

// HintDisplay renders the partially revealed answer: letters at correct
// positions and hinted letters uppercase, everything else a placeholder.
// A hinted letter reveals all of its occurrences.
func (g *Game) HintDisplay() string {
	runes := []rune(g.Secret)
	parts := make([]string, 0, len(runes))
	for i, r := range runes {
		if g.CorrectPositions[i] || g.HintedLetters[string(r)] {
			parts = append(parts, strings.ToUpper(string(r)))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}
