package model

import "time"

// PlayerID uniquely identifies a player within a room, stable for the
// player's session
type PlayerID string

// Avatar is display-only decoration assigned at join time
type Avatar struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// InitialBubbles is the number of lives a player starts a match with
const InitialBubbles = 3

// Player is a participant embedded in a Room. Score only ever increases
// during a match; Bubbles only ever decreases.
type Player struct {
	ID       PlayerID  `json:"id"`
	Name     string    `json:"name"`
	Avatar   Avatar    `json:"avatar"`
	Score    int       `json:"score"`
	Bubbles  int       `json:"bubbles"`
	IsHost   bool      `json:"is_host"`
	JoinedAt time.Time `json:"joined_at"`
}
