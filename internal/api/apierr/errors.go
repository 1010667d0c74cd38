package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordlebot-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidGuess         = "INVALID_GUESS"
	CodeSessionActive        = "SESSION_ACTIVE"
	CodeNoActiveGame         = "NO_ACTIVE_GAME"
	CodeGameFinished         = "GAME_FINISHED"
	CodeHintUnavailable      = "HINT_UNAVAILABLE"
	CodePrivateScope         = "PRIVATE_SCOPE"
	CodeWrongPersonaPassword = "WRONG_PERSONA_PASSWORD"
	CodeDailyAlreadyPlayed   = "DAILY_ALREADY_PLAYED"
	CodeGuildNotConfigured   = "GUILD_NOT_CONFIGURED"
	CodeWordListUnavailable  = "WORD_LIST_UNAVAILABLE"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidGuess):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGuess, "Guess must be five alphabetic characters"}}
	case errors.Is(err, model.ErrSessionActive):
		return &httpError{http.StatusConflict, APIError{CodeSessionActive, "A game is already in progress"}}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No active game"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrHintUnavailable):
		return &httpError{http.StatusConflict, APIError{CodeHintUnavailable, "No hint available"}}
	case errors.Is(err, model.ErrPrivateScope):
		return &httpError{http.StatusForbidden, APIError{CodePrivateScope, "This history is private"}}
	case errors.Is(err, model.ErrWrongPersonaPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeWrongPersonaPassword, "Wrong persona password"}}
	case errors.Is(err, model.ErrAlreadyPlayedDaily):
		return &httpError{http.StatusConflict, APIError{CodeDailyAlreadyPlayed, "Daily challenge already played today"}}
	case errors.Is(err, model.ErrGuildNotConfigured):
		return &httpError{http.StatusNotFound, APIError{CodeGuildNotConfigured, "Guild has no configured channel"}}
	case errors.Is(err, model.ErrWordListEmpty), errors.Is(err, model.ErrWordListNotFound):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeWordListUnavailable, "Word list is not available"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
