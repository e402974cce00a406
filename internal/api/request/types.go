package request

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// validate is the shared validator instance; validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = validator.New()

// Validate checks a request body against its validation tags and
// returns a human-readable description of every failed field.
func Validate(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	return lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	})
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	HostName string `json:"host_name" validate:"required,min=1,max=24"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	PlayerName string `json:"player_name" validate:"required,min=1,max=24"`
}

// LeaveRoomRequest is the request body for leaving a room
type LeaveRoomRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

// UpdateSettingsRequest is the request body for updating room settings.
// Omitted fields are left unchanged.
type UpdateSettingsRequest struct {
	RequesterID          string  `json:"requester_id" validate:"required"`
	MaxPlayers           *int    `json:"max_players,omitempty" validate:"omitempty,min=2,max=6"`
	Difficulty           *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy normal hard"`
	TurnTimeLimitSeconds *int    `json:"turn_time_limit_seconds,omitempty" validate:"omitempty,min=10,max=120"`
}

// StartGameRequest is the request body for starting a match
type StartGameRequest struct {
	RequesterID string `json:"requester_id" validate:"required"`
}

// SubmitWordRequest is the request body for submitting a word
type SubmitWordRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Word     string `json:"word" validate:"required"`
}

// SkipTurnRequest is the request body for skipping a turn
type SkipTurnRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}
