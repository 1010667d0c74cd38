package guess

import (
	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/model"
)

// NextHint picks a secret position to reveal, uniformly among positions not
// guessed exactly right and whose letter has not been hinted before, and
// returns that position's letter. A doubled letter occupies several eligible
// positions and is weighted accordingly.
// Returns false when nothing is left to reveal.
func NextHint(g *model.Game, rnd random.Random) (string, bool) {
	secret := []rune(g.Secret)

	var positions []int
	for i, r := range secret {
		if g.CorrectPositions[i] || g.HintedLetters[string(r)] {
			continue
		}
		positions = append(positions, i)
	}

	if len(positions) == 0 {
		return "", false
	}
	return string(secret[positions[rnd.Intn(len(positions))]]), true
}
