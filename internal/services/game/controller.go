// Package game is the outward-facing facade: it drives sessions through
// their lifecycle and runs the finish pipeline (ledger, achievements, daily
// standings) when a game ends.
package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/wordlebot-go/internal/dependencies/clock"
	"github.com/mcoot/wordlebot-go/internal/dependencies/random"
	"github.com/mcoot/wordlebot-go/internal/model"
	"github.com/mcoot/wordlebot-go/internal/services/achievement"
	"github.com/mcoot/wordlebot-go/internal/services/daily"
	"github.com/mcoot/wordlebot-go/internal/services/guess"
	"github.com/mcoot/wordlebot-go/internal/services/history"
	"github.com/mcoot/wordlebot-go/internal/services/identity"
	"github.com/mcoot/wordlebot-go/internal/services/session"
	"github.com/mcoot/wordlebot-go/internal/services/words"
	"github.com/mcoot/wordlebot-go/internal/storage"
)

// EndResult summarizes the finish pipeline for a terminal game
type EndResult struct {
	Record          *model.HistoryRecord
	NewAchievements []model.Achievement

	// PersistenceWarning is set when a ledger write failed; the game outcome
	// stands and the write is retried on the next ledger use
	PersistenceWarning bool
}

// GuessResult is the outcome of one submitted guess
type GuessResult struct {
	Game    *model.Game
	Attempt model.Attempt

	// End is set when this guess finished the game
	End *EndResult
}

// HintResult is the outcome of a hint request
type HintResult struct {
	Game    *model.Game
	Letter  string
	Display string
}

// Controller wires the services into the outward contract
type Controller struct {
	words        *words.Service
	sessions     *session.Registry
	identity     *identity.Service
	history      *history.Service
	daily        *daily.Coordinator
	achievements *achievement.Service
	storage      storage.Storage
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates the game controller
func NewController(
	words *words.Service,
	sessions *session.Registry,
	identitySvc *identity.Service,
	historySvc *history.Service,
	dailySvc *daily.Coordinator,
	achievements *achievement.Service,
	st storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		words:        words,
		sessions:     sessions,
		identity:     identitySvc,
		history:      historySvc,
		daily:        dailySvc,
		achievements: achievements,
		storage:      st,
		clock:        clk,
		random:       rnd,
		logger:       logger,
	}
}

// Ensure the controller satisfies the sweeper's finalizer contract
var _ session.Abandoner = (*Controller)(nil)

// StartGame begins a new game with a random secret. Fails with
// ErrSessionActive if the player already has one.
func (c *Controller) StartGame(ctx context.Context, playerID model.PlayerID, guildID model.GuildID) (*model.Game, error) {
	secret, err := c.words.PickRandom()
	if err != nil {
		return nil, err
	}

	var game *model.Game
	err = c.sessions.WithPlayer(playerID, func() error {
		var createErr error
		game, createErr = c.sessions.Create(playerID, guildID, secret)
		return createErr
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("player_id", string(playerID)),
	)
	return game, nil
}

// StartDailyGame begins a game against today's shared challenge word.
// Each player gets one scored attempt per day.
func (c *Controller) StartDailyGame(ctx context.Context, playerID model.PlayerID, guildID model.GuildID) (*model.Game, error) {
	played, err := c.daily.HasPlayed(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, model.ErrAlreadyPlayedDaily
	}

	secret, err := c.daily.Word(ctx)
	if err != nil {
		return nil, err
	}

	var game *model.Game
	err = c.sessions.WithPlayer(playerID, func() error {
		var createErr error
		game, createErr = c.sessions.Create(playerID, guildID, secret)
		if createErr != nil {
			return createErr
		}
		game.Daily = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("daily game started",
		slog.String("player_id", string(playerID)),
	)
	return game, nil
}

// GetGame returns the player's active game
func (c *Controller) GetGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	return c.sessions.Get(playerID)
}

// SubmitGuess scores one guess and advances the session. A malformed guess
// is rejected with no state change. The finish pipeline runs inline when
// the guess wins the game or exhausts the last attempt.
func (c *Controller) SubmitGuess(ctx context.Context, playerID model.PlayerID, word string) (*GuessResult, error) {
	if err := guess.ValidateWord(word); err != nil {
		return nil, err
	}

	var result *GuessResult
	err := c.sessions.WithPlayer(playerID, func() error {
		game, err := c.sessions.Get(playerID)
		if err != nil {
			return err
		}

		marks := guess.Evaluate(word, game.Secret)
		attempt := model.Attempt{Word: strings.ToLower(word), Marks: marks}

		game.Attempts = append(game.Attempts, attempt)
		game.Remaining--
		game.UpdatedAt = c.clock.Now()

		won := true
		for i, mark := range marks {
			if mark == model.MarkCorrect {
				game.CorrectPositions[i] = true
			} else {
				won = false
			}
		}

		result = &GuessResult{Game: game, Attempt: attempt}
		switch {
		case won:
			game.State = model.GameStateWon
		case game.Remaining == 0:
			game.State = model.GameStateLost
		default:
			return nil
		}

		end, endErr := c.finish(ctx, game)
		result.End = end
		return endErr
	})
	if err != nil && !errors.Is(err, model.ErrPersistence) {
		return nil, err
	}
	return result, err
}

// RequestHint reveals one unresolved secret letter, up to MaxHints per game
func (c *Controller) RequestHint(ctx context.Context, playerID model.PlayerID) (*HintResult, error) {
	var result *HintResult
	err := c.sessions.WithPlayer(playerID, func() error {
		game, err := c.sessions.Get(playerID)
		if err != nil {
			return err
		}
		if game.HintsUsed >= model.MaxHints {
			return model.ErrHintUnavailable
		}

		letter, ok := guess.NextHint(game, c.random)
		if !ok {
			return model.ErrHintUnavailable
		}

		game.HintedLetters[letter] = true
		game.HintsUsed++
		game.UpdatedAt = c.clock.Now()

		result = &HintResult{
			Game:    game,
			Letter:  letter,
			Display: game.HintDisplay(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AbandonGame ends the player's active game as a loss for history purposes.
// Idempotent: abandoning with no active game is a no-op, not an error.
func (c *Controller) AbandonGame(ctx context.Context, playerID model.PlayerID) error {
	return c.sessions.WithPlayer(playerID, func() error {
		game, err := c.sessions.Get(playerID)
		if err != nil {
			if errors.Is(err, model.ErrNoActiveSession) {
				return nil
			}
			return err
		}
		if game.IsTerminal() {
			return nil
		}

		game.State = model.GameStateAbandoned
		game.UpdatedAt = c.clock.Now()

		_, endErr := c.finish(ctx, game)
		return endErr
	})
}

// finish runs the end-of-game pipeline: ledger append, achievement
// evaluation, daily standings, session removal. Caller holds the player
// lock. A persistence failure never rolls the outcome back.
func (c *Controller) finish(ctx context.Context, game *model.Game) (*EndResult, error) {
	defer c.sessions.Remove(game.PlayerID)

	res, err := c.identity.Resolve(ctx, game.PlayerID, game.GuildID)
	if err != nil {
		return nil, err
	}

	end := &EndResult{}
	rec, recordErr := c.history.Record(ctx, game, res)
	end.Record = rec
	if recordErr != nil {
		if !errors.Is(recordErr, model.ErrPersistence) {
			return nil, recordErr
		}
		end.PersistenceWarning = true
	}

	// Any terminal daily game consumes the player's single scored attempt
	// for the day, so a loss cannot be retried.
	if game.Daily {
		if err := c.daily.RecordResult(ctx, game.PlayerID, game.AttemptCount()); err != nil &&
			!errors.Is(err, model.ErrAlreadyPlayedDaily) {
			c.logger.Warn("failed to record daily result",
				slog.String("player_id", string(game.PlayerID)),
				slog.String("error", err.Error()),
			)
		}
	}

	total, err := c.history.TotalGames(ctx, game.PlayerID, res.Persona)
	if err != nil {
		total = 0
	}
	unlocked, err := c.achievements.Evaluate(ctx, game.PlayerID, achievement.Outcome{
		Won:             game.Won(),
		AttemptCount:    game.AttemptCount(),
		HintsUsed:       game.HintsUsed,
		DurationSeconds: game.Duration(c.clock.Now()).Seconds(),
		TotalGames:      total,
	})
	if err != nil {
		c.logger.Warn("achievement evaluation failed",
			slog.String("player_id", string(game.PlayerID)),
			slog.String("error", err.Error()),
		)
	}
	end.NewAchievements = unlocked

	c.logger.Info("game finished",
		slog.String("player_id", string(game.PlayerID)),
		slog.String("state", string(game.State)),
		slog.Int("attempts", game.AttemptCount()),
	)

	if end.PersistenceWarning {
		return end, model.ErrPersistence
	}
	return end, nil
}
