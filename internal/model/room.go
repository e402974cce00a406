package model

import "time"

// RoomID is a short human-typeable code for joining rooms
type RoomID string

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Lobby open, no match running
	RoomStatusPlaying  RoomStatus = "playing"  // Match in progress
	RoomStatusFinished RoomStatus = "finished" // Match over, room eligible for expiry
)

// Difficulty selects the scoring multiplier and pattern pool
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Settings holds the host-configurable room options
type Settings struct {
	MaxPlayers           int        `json:"max_players"`
	Difficulty           Difficulty `json:"difficulty"`
	TurnTimeLimitSeconds int        `json:"turn_time_limit_seconds"`
}

// TurnTimeLimitDuration returns the turn time limit as a duration
func (s Settings) TurnTimeLimitDuration() time.Duration {
	return time.Duration(s.TurnTimeLimitSeconds) * time.Second
}

// DefaultSettings returns the settings a room is created with
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:           4,
		Difficulty:           DifficultyNormal,
		TurnTimeLimitSeconds: 30,
	}
}

// Room is the shared mutable aggregate for one match: lobby membership,
// turn state and scores all live in the same record so every transition
// is a single compare-and-set write.
type Room struct {
	ID       RoomID     `json:"id"`
	HostID   PlayerID   `json:"host_id"`
	Status   RoomStatus `json:"status"`
	Settings Settings   `json:"settings"`

	// Players is ordered by join time; the order defines turn rotation
	// and must never be reordered.
	Players []Player `json:"players"`

	CurrentTurnPlayerID PlayerID  `json:"current_turn_player_id,omitempty"`
	Pattern             string    `json:"pattern,omitempty"`
	WaterLevel          float64   `json:"water_level"`
	TurnStartedAt       time.Time `json:"turn_started_at,omitempty"`

	// Version increases by one on every accepted transition and is the
	// token used for compare-and-set writes.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetPlayer returns the player with the given ID, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// PlayerIndex returns the position of the player in turn order, or -1
func (r *Room) PlayerIndex(id PlayerID) int {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// GetHost returns the host player, or nil if none
func (r *Room) GetHost() *Player {
	return r.GetPlayer(r.HostID)
}

// IsFull reports whether the room has reached its player cap
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.Settings.MaxPlayers
}

// Clone returns a deep copy of the room. Stores and snapshots copy rooms
// so that callers can never mutate shared state in place.
func (r *Room) Clone() *Room {
	cp := *r
	cp.Players = make([]Player, len(r.Players))
	copy(cp.Players, r.Players)
	return &cp
}
