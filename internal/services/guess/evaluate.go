// Package guess implements guess evaluation and hint selection.
package guess

import (
	"strings"

	"github.com/mcoot/wordlebot-go/internal/model"
)

// Evaluate marks each letter of guess against secret. Exact matches are
// resolved first and consume their secret letters, then presence marks are
// drawn from the remaining pool, so duplicate letters in a guess never
// claim more marks than the secret holds.
func Evaluate(guess, secret string) []model.LetterMark {
	guessRunes := []rune(strings.ToLower(guess))
	secretRunes := []rune(strings.ToLower(secret))

	marks := make([]model.LetterMark, len(guessRunes))
	remaining := make(map[rune]int)

	// First pass: exact positions
	for i, r := range guessRunes {
		if i < len(secretRunes) && secretRunes[i] == r {
			marks[i] = model.MarkCorrect
		}
	}
	for i, r := range secretRunes {
		if i >= len(guessRunes) || marks[i] != model.MarkCorrect {
			remaining[r]++
		}
	}

	// Second pass: presence from the unconsumed pool
	for i, r := range guessRunes {
		if marks[i] == model.MarkCorrect {
			continue
		}
		if remaining[r] > 0 {
			marks[i] = model.MarkPresent
			remaining[r]--
		} else {
			marks[i] = model.MarkAbsent
		}
	}

	return marks
}

// ValidateWord checks that word is exactly the playable length and consists
// solely of ASCII letters
func ValidateWord(word string) error {
	w := strings.ToLower(word)
	if len(w) != model.WordLength {
		return model.ErrInvalidGuess
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return model.ErrInvalidGuess
		}
	}
	return nil
}
