package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/wordtide/wordtide-go/internal/api/handler"
	apimiddleware "github.com/wordtide/wordtide-go/internal/api/middleware"
	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/middleware"
	"github.com/wordtide/wordtide-go/internal/services/room"
	"github.com/wordtide/wordtide-go/internal/services/turn"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	RoomManager room.ManagerInterface
	TurnEngine  *turn.Engine
	Bus         bus.Bus
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomManager)
	gameHandler := handler.NewGameHandler(cfg.TurnEngine)
	eventsHandler := handler.NewEventsHandler(cfg.RoomManager, cfg.Bus, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Room lifecycle
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/settings", roomHandler.UpdateSettings).Methods(http.MethodPatch)

	// Match progression
	api.HandleFunc("/rooms/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/submit", gameHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/skip", gameHandler.Skip).Methods(http.MethodPost)

	// Event stream
	api.HandleFunc("/rooms/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
