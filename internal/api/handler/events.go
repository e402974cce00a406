package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wordtide/wordtide-go/internal/api/apierr"
	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/services/room"
)

// Time between keepalive comments on an event stream
const keepalivePeriod = 15 * time.Second

// EventsHandler streams room snapshots over SSE. Each connection holds
// its own bus subscription; clients apply received snapshots
// last-write-wins by version, so drops and duplicates are harmless.
type EventsHandler struct {
	rooms  room.ManagerInterface
	bus    bus.Bus
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(rooms room.ManagerInterface, eventBus bus.Bus, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		rooms:  rooms,
		bus:    eventBus,
		logger: logger.With(slog.String("component", "events")),
	}
}

// Stream handles GET /api/v1/rooms/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := roomID(r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Resolve the room before committing to a stream so absent rooms
	// still get a JSON 404
	current, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sub, err := h.bus.Subscribe(r.Context(), bus.RoomChannel(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	defer func() {
		_ = sub.Close()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	// Seed the client with the current snapshot; everything after rides
	// the subscription
	h.writeEvent(w, model.Event{
		Type:      model.EventSnapshot,
		RoomID:    current.ID,
		Version:   current.Version,
		Timestamp: current.UpdatedAt,
		Room:      *current,
	})
	flusher.Flush()

	ticker := time.NewTicker(keepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if !h.writeEvent(w, event) {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// writeEvent writes one SSE frame; returns false once the connection
// is unusable
func (h *EventsHandler) writeEvent(w http.ResponseWriter, event model.Event) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to marshal event",
			slog.String("room_id", string(event.RoomID)),
			slog.String("error", err.Error()))
		return true
	}

	if _, err := w.Write([]byte("event: " + string(event.Type) + "\n")); err != nil {
		return false
	}
	if _, err := w.Write(append(append([]byte("data: "), payload...), '\n', '\n')); err != nil {
		return false
	}
	return true
}
