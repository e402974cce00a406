package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wordtide/wordtide-go/internal/api/apierr"
	"github.com/wordtide/wordtide-go/internal/api/request"
	"github.com/wordtide/wordtide-go/internal/api/response"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/services/room"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	rooms room.ManagerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms room.ManagerInterface) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// roomID extracts the room code path variable, normalized to upper case
func roomID(r *http.Request) model.RoomID {
	return model.RoomID(strings.ToUpper(mux.Vars(r)["id"]))
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	created, err := h.rooms.CreateRoom(r.Context(), req.HostName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListAvailableRooms(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summaries := make([]response.RoomSummary, len(rooms))
	for i, rm := range rooms {
		summaries[i] = response.RoomSummaryFromModel(rm)
	}
	response.JSON(w, http.StatusOK, response.RoomList{Rooms: summaries})
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.rooms.GetRoom(r.Context(), roomID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	joined, err := h.rooms.JoinRoom(r.Context(), roomID(r), req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	if err := h.rooms.LeaveRoom(r.Context(), roomID(r), model.PlayerID(req.PlayerID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// UpdateSettings handles PATCH /api/v1/rooms/{id}/settings
func (h *RoomHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if problems := request.Validate(req); problems != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(strings.Join(problems, "; ")))
		return
	}

	patch := room.SettingsPatch{
		MaxPlayers:           req.MaxPlayers,
		TurnTimeLimitSeconds: req.TurnTimeLimitSeconds,
	}
	if req.Difficulty != nil {
		d := model.Difficulty(*req.Difficulty)
		patch.Difficulty = &d
	}

	updated, err := h.rooms.UpdateSettings(r.Context(), roomID(r), model.PlayerID(req.RequesterID), patch)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(updated.Settings))
}
