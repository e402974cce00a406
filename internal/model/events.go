package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRoomCreated     EventType = "room_created"
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventSettingsUpdated EventType = "settings_updated"
	EventGameStarted     EventType = "game_started"
	EventWordAccepted    EventType = "word_accepted"
	EventTurnSkipped     EventType = "turn_skipped"
	EventGameOver        EventType = "game_over"

	// EventSnapshot is a resynchronization frame sent when a client first
	// attaches to a room's event stream
	EventSnapshot EventType = "snapshot"
)

// Event is published on a room's channel after every accepted transition.
// It carries the full post-transition Room snapshot rather than a diff:
// receivers overwrite their local view wholesale, so duplicate or
// out-of-order delivery cannot corrupt it as long as stale versions are
// discarded.
type Event struct {
	Type      EventType `json:"type"`
	RoomID    RoomID    `json:"room_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Room      Room      `json:"room"`

	// Turn is set on word_accepted and turn_skipped events
	Turn *TurnResult `json:"turn,omitempty"`

	// Winner is set on game_over events; empty on a tie
	Winner PlayerID `json:"winner,omitempty"`
}

// TurnResult describes the outcome of a turn transition
type TurnResult struct {
	PlayerID     PlayerID `json:"player_id"`
	Word         string   `json:"word,omitempty"`
	Points       int      `json:"points"`
	Pattern      string   `json:"pattern"`
	NextPlayerID PlayerID `json:"next_player_id,omitempty"`
	Skipped      bool     `json:"skipped,omitempty"`
}
