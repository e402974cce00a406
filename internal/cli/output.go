package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case Settings:
		o.printSettings(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Avatar response type (matches API)
type Avatar struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Player response type
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  Avatar `json:"avatar"`
	Score   int    `json:"score"`
	Bubbles int    `json:"bubbles"`
	IsHost  bool   `json:"is_host"`
}

// Settings response type
type Settings struct {
	MaxPlayers           int    `json:"max_players"`
	Difficulty           string `json:"difficulty"`
	TurnTimeLimitSeconds int    `json:"turn_time_limit_seconds"`
}

// Room response type
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
}

// RoomSummary response type
type RoomSummary struct {
	ID          string `json:"id"`
	HostName    string `json:"host_name"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Difficulty  string `json:"difficulty"`
}

// RoomList response type
type RoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// SubmitResult response type
type SubmitResult struct {
	Accepted bool `json:"accepted"`
	Points   int  `json:"points"`
	Room     Room `json:"room"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Difficulty: %s\n", r.Settings.Difficulty)
	if r.Pattern != "" {
		fmt.Printf("Pattern: %s\n", r.Pattern)
	}
	if r.Status == "playing" {
		fmt.Printf("Water level: %.1f\n", r.WaterLevel)
	}
	fmt.Printf("Players (%d/%d):\n", len(r.Players), r.Settings.MaxPlayers)
	for _, p := range r.Players {
		marks := ""
		if p.IsHost {
			marks += " [host]"
		}
		if p.ID == r.CurrentTurnPlayerID {
			marks += " [turn]"
		}
		fmt.Printf("  %s %s (%s) - %d pts, %d bubbles%s\n",
			p.Avatar.Emoji, p.Name, p.ID, p.Score, p.Bubbles, marks)
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Println("No open rooms")
		return
	}
	fmt.Printf("Open rooms (%d):\n", len(l.Rooms))
	for _, r := range l.Rooms {
		fmt.Printf("  %s - host %s, %d/%d players, %s\n",
			r.ID, r.HostName, r.PlayerCount, r.MaxPlayers, r.Difficulty)
	}
}

func (o *Output) printSettings(s Settings) {
	fmt.Printf("Max players: %d\n", s.MaxPlayers)
	fmt.Printf("Difficulty: %s\n", s.Difficulty)
	fmt.Printf("Turn time limit: %ds\n", s.TurnTimeLimitSeconds)
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Accepted! +%d points\n", r.Points)
	fmt.Printf("Next pattern: %s\n", r.Room.Pattern)
	if r.Room.CurrentTurnPlayerID != "" {
		fmt.Printf("Next turn: %s\n", r.Room.CurrentTurnPlayerID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
