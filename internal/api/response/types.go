package response

import (
	"time"

	"github.com/wordtide/wordtide-go/internal/model"
)

// Avatar represents a player avatar in API responses
type Avatar struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Player represents a player in API responses
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Avatar   Avatar    `json:"avatar"`
	Score    int       `json:"score"`
	Bubbles  int       `json:"bubbles"`
	IsHost   bool      `json:"is_host"`
	JoinedAt time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Name:     p.Name,
		Avatar:   Avatar(p.Avatar),
		Score:    p.Score,
		Bubbles:  p.Bubbles,
		IsHost:   p.IsHost,
		JoinedAt: p.JoinedAt,
	}
}

// Settings represents room settings in API responses
type Settings struct {
	MaxPlayers           int    `json:"max_players"`
	Difficulty           string `json:"difficulty"`
	TurnTimeLimitSeconds int    `json:"turn_time_limit_seconds"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		MaxPlayers:           s.MaxPlayers,
		Difficulty:           string(s.Difficulty),
		TurnTimeLimitSeconds: s.TurnTimeLimitSeconds,
	}
}

// Room represents a room in API responses. It carries the full
// authoritative snapshot; clients replace local state with it wholesale.
type Room struct {
	ID                  string     `json:"id"`
	HostID              string     `json:"host_id"`
	Status              string     `json:"status"`
	Settings            Settings   `json:"settings"`
	Players             []Player   `json:"players"`
	CurrentTurnPlayerID string     `json:"current_turn_player_id,omitempty"`
	Pattern             string     `json:"pattern,omitempty"`
	WaterLevel          float64    `json:"water_level"`
	TurnStartedAt       *time.Time `json:"turn_started_at,omitempty"`
	Version             int64      `json:"version"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}

	var turnStartedAt *time.Time
	if !r.TurnStartedAt.IsZero() {
		t := r.TurnStartedAt
		turnStartedAt = &t
	}

	return Room{
		ID:                  string(r.ID),
		HostID:              string(r.HostID),
		Status:              string(r.Status),
		Settings:            SettingsFromModel(r.Settings),
		Players:             players,
		CurrentTurnPlayerID: string(r.CurrentTurnPlayerID),
		Pattern:             r.Pattern,
		WaterLevel:          r.WaterLevel,
		TurnStartedAt:       turnStartedAt,
		Version:             r.Version,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// RoomSummary is the compact listing form of a room
type RoomSummary struct {
	ID          string    `json:"id"`
	HostName    string    `json:"host_name"`
	PlayerCount int       `json:"player_count"`
	MaxPlayers  int       `json:"max_players"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomSummaryFromModel converts model.Room to its listing form
func RoomSummaryFromModel(r *model.Room) RoomSummary {
	hostName := ""
	if host := r.GetHost(); host != nil {
		hostName = host.Name
	}
	return RoomSummary{
		ID:          string(r.ID),
		HostName:    hostName,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.Settings.MaxPlayers,
		Difficulty:  string(r.Settings.Difficulty),
		CreatedAt:   r.CreatedAt,
	}
}

// RoomList is the response for room discovery
type RoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// SubmitResult is the response after an accepted word
type SubmitResult struct {
	Accepted bool `json:"accepted"`
	Points   int  `json:"points"`
	Room     Room `json:"room"`
}
