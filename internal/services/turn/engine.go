package turn

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/wordtide/wordtide-go/internal/dependencies/clock"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/services/lexicon"
	"github.com/wordtide/wordtide-go/internal/services/pattern"
	"github.com/wordtide/wordtide-go/internal/services/room"
	"github.com/wordtide/wordtide-go/internal/services/scoring"
)

const (
	// MinPlayersToStart is the minimum lobby size for a match
	MinPlayersToStart = 2

	// minWordLength is the shortest acceptable submission
	minWordLength = 3
)

// Engine owns in-match progression: whose turn it is, the live pattern,
// score accumulation and the end-of-match conditions. All game state
// lives inside the Room record, so every move rides the lifecycle
// manager's compare-and-set primitive and stays atomic with membership
// changes.
type Engine struct {
	rooms    *room.Manager
	lexicon  lexicon.Oracle
	patterns *pattern.Generator
	scoring  *scoring.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// NewEngine creates a new turn engine
func NewEngine(
	rooms *room.Manager,
	lex lexicon.Oracle,
	patterns *pattern.Generator,
	scoringService *scoring.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		rooms:    rooms,
		lexicon:  lex,
		patterns: patterns,
		scoring:  scoringService,
		clock:    clock,
		logger:   logger.With(slog.String("component", "turn")),
	}
}

// Start begins a match: waiting -> playing. Host only, and at least
// two players must be present. The first joiner takes the first turn.
func (e *Engine) Start(ctx context.Context, roomID model.RoomID, requesterID model.PlayerID) (*model.Room, error) {
	return e.rooms.Apply(ctx, roomID, func(r *model.Room) (*model.Event, error) {
		if requesterID != r.HostID {
			return nil, model.ErrNotHost
		}
		if r.Status != model.RoomStatusWaiting {
			return nil, model.ErrInvalidState
		}
		if len(r.Players) < MinPlayersToStart {
			return nil, model.ErrNotEnoughPlayers
		}

		r.Status = model.RoomStatusPlaying
		r.CurrentTurnPlayerID = r.Players[0].ID
		r.Pattern = e.patterns.Next(0)
		r.WaterLevel = 0
		r.TurnStartedAt = e.clock.Now()

		e.logger.Info("match started",
			slog.String("room_id", string(r.ID)),
			slog.Int("player_count", len(r.Players)))

		return &model.Event{Type: model.EventGameStarted}, nil
	})
}

// SubmitWord handles the active player's word for the current pattern.
// On success it awards points, regenerates the pattern from the new
// score, drains the water level and rotates the turn. Returns the
// updated room and the points awarded.
func (e *Engine) SubmitWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, word string) (*model.Room, int, error) {
	word = strings.ToLower(strings.TrimSpace(word))

	var points int
	updated, err := e.rooms.Apply(ctx, roomID, func(r *model.Room) (*model.Event, error) {
		if r.Status != model.RoomStatusPlaying {
			return nil, model.ErrInvalidState
		}
		if playerID != r.CurrentTurnPlayerID {
			return nil, model.ErrNotYourTurn
		}
		if !strings.HasPrefix(word, strings.ToLower(r.Pattern)) {
			return nil, model.ErrPatternMismatch
		}
		if utf8.RuneCountInString(word) < minWordLength {
			return nil, model.ErrWordTooShort
		}
		if !e.lexicon.IsValid(word) {
			return nil, model.ErrInvalidWord
		}

		player := r.GetPlayer(playerID)
		if player == nil {
			return nil, model.ErrNotInRoom
		}

		now := e.clock.Now()
		elapsed := now.Sub(r.TurnStartedAt)
		limit := r.Settings.TurnTimeLimitDuration()

		points = e.scoring.WordPoints(
			utf8.RuneCountInString(word),
			r.Settings.Difficulty,
			e.scoring.TimeFactor(elapsed, limit),
		)
		player.Score += points

		r.Pattern = e.patterns.Next(player.Score)
		r.WaterLevel = e.scoring.WaterAfterSuccess(r.WaterLevel)
		next := e.advanceTurn(r, playerID, now)

		return &model.Event{
			Type: model.EventWordAccepted,
			Turn: &model.TurnResult{
				PlayerID:     playerID,
				Word:         word,
				Points:       points,
				Pattern:      r.Pattern,
				NextPlayerID: next,
			},
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return updated, points, nil
}

// Skip is the cooperative timeout transition: the active player's
// missed turn costs one bubble, raises the water, and hands the turn
// on without points. Running out of bubbles or flooding the room ends
// the match.
func (e *Engine) Skip(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	return e.rooms.Apply(ctx, roomID, func(r *model.Room) (*model.Event, error) {
		if r.Status != model.RoomStatusPlaying {
			return nil, model.ErrInvalidState
		}
		if playerID != r.CurrentTurnPlayerID {
			return nil, model.ErrNotYourTurn
		}

		player := r.GetPlayer(playerID)
		if player == nil {
			return nil, model.ErrNotInRoom
		}

		now := e.clock.Now()
		elapsed := now.Sub(r.TurnStartedAt)

		if player.Bubbles > 0 {
			player.Bubbles--
		}
		r.WaterLevel = e.scoring.WaterAfterSkip(r.WaterLevel, elapsed)

		if player.Bubbles == 0 || e.scoring.Flooded(r.WaterLevel) {
			return e.finish(r), nil
		}

		next := e.advanceTurn(r, playerID, now)
		return &model.Event{
			Type: model.EventTurnSkipped,
			Turn: &model.TurnResult{
				PlayerID:     playerID,
				Pattern:      r.Pattern,
				NextPlayerID: next,
				Skipped:      true,
			},
		}, nil
	})
}

// advanceTurn rotates the turn to the next player after the given one
// in the current player sequence, wrapping around. Must be called with
// the player still present.
func (e *Engine) advanceTurn(r *model.Room, after model.PlayerID, now time.Time) model.PlayerID {
	idx := r.PlayerIndex(after)
	next := r.Players[(idx+1)%len(r.Players)].ID
	r.CurrentTurnPlayerID = next
	r.TurnStartedAt = now
	return next
}

// finish ends the match and names the winner (empty on a tie)
func (e *Engine) finish(r *model.Room) *model.Event {
	r.Status = model.RoomStatusFinished
	r.CurrentTurnPlayerID = ""

	e.logger.Info("match over",
		slog.String("room_id", string(r.ID)),
		slog.Float64("water_level", r.WaterLevel))

	return &model.Event{
		Type:   model.EventGameOver,
		Winner: e.winner(r),
	}
}

// winner returns the id of the uniquely highest-scoring player
func (e *Engine) winner(r *model.Room) model.PlayerID {
	if len(r.Players) == 0 {
		return ""
	}
	top := lo.MaxBy(r.Players, func(a, b model.Player) bool {
		return a.Score > b.Score
	})
	ties := lo.CountBy(r.Players, func(p model.Player) bool {
		return p.Score == top.Score
	})
	if ties > 1 {
		return ""
	}
	return top.ID
}
