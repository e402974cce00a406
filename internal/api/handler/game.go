package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wordtide/wordtide-go/internal/api/apierr"
	"github.com/wordtide/wordtide-go/internal/api/request"
	"github.com/wordtide/wordtide-go/internal/api/response"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/services/turn"
)

// GameHandler handles in-match endpoints
type GameHandler struct {
	engine *turn.Engine
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine *turn.Engine) *GameHandler {
	return &GameHandler{engine: engine}
}

// Start handles POST /api/v1/rooms/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	started, err := h.engine.Start(r.Context(), roomID(r), model.PlayerID(req.RequesterID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// Submit handles POST /api/v1/rooms/{id}/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	updated, points, err := h.engine.SubmitWord(r.Context(), roomID(r), model.PlayerID(req.PlayerID), req.Word)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResult{
		Accepted: true,
		Points:   points,
		Room:     response.RoomFromModel(updated),
	})
}

// Skip handles POST /api/v1/rooms/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	var req request.SkipTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	updated, err := h.engine.Skip(r.Context(), roomID(r), model.PlayerID(req.PlayerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}
