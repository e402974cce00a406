package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wordtide/wordtide-go/internal/model"
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
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeRoomFull         = "ROOM_FULL"
	CodeNotHost          = "NOT_HOST"
	CodeInvalidState     = "INVALID_STATE"
	CodeNotEnoughPlayers = "NOT_ENOUGH_PLAYERS"
	CodeInvalidSettings  = "INVALID_SETTINGS"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodePatternMismatch  = "PATTERN_MISMATCH"
	CodeWordTooShort     = "WORD_TOO_SHORT"
	CodeInvalidWord      = "INVALID_WORD"
	CodeConflict         = "CONFLICT"
	CodeTransient        = "TRANSIENT"
	CodeInternalError    = "INTERNAL_ERROR"
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

// toHTTPError converts an error to an httpError. Every rejection kind
// gets a distinct code so callers can decide to retry, prompt the user
// or abandon.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound), errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in room"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrInvalidState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, "Action not valid for the room's current status"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrInvalidSettings):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettings, "Invalid settings"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrPatternMismatch):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodePatternMismatch, "Word does not start with the pattern"}}
	case errors.Is(err, model.ErrWordTooShort):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWordTooShort, "Word must be at least 3 letters"}}
	case errors.Is(err, model.ErrInvalidWord):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidWord, "Word is not in the lexicon"}}
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update, please retry"}}
	case errors.Is(err, model.ErrTransient):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeTransient, "Backend temporarily unavailable, please retry"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
