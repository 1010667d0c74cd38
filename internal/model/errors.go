package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionActive   = errors.New("player already has an active game")
	ErrNoActiveSession = errors.New("player has no active game")
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidGuess    = errors.New("guess must be five alphabetic characters")
	ErrHintUnavailable = errors.New("no hint available")

	// Identity errors
	ErrSettingsNotFound     = errors.New("player settings not found")
	ErrPrivateScope         = errors.New("requested history is private")
	ErrWrongPersonaPassword = errors.New("wrong anonymous persona password")

	// Daily challenge errors
	ErrDailyStateNotFound = errors.New("daily challenge state not found")
	ErrAlreadyPlayedDaily = errors.New("daily challenge already played today")

	// Word list errors
	ErrWordListEmpty    = errors.New("word list is empty")
	ErrWordListNotFound = errors.New("word list not loaded")

	// Guild configuration errors
	ErrGuildNotConfigured = errors.New("guild has no configured channel")

	// Persistence errors. Wrapped around storage failures that must not roll
	// back an in-memory transition; surfaced to callers as a warning.
	ErrPersistence = errors.New("persistence failure")
)
