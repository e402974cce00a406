package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/dependencies/clock"
	"github.com/wordtide/wordtide-go/internal/dependencies/random"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/storage"
)

const (
	// CodeLength is the length of generated room codes
	CodeLength = 6
	// CodeAlphabet is the characters used in room codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// RetentionWindow is how long a room stays discoverable after its
	// last accepted transition
	RetentionWindow = 2 * time.Hour

	// maxTransitionRetries bounds the read-compute-CAS cycle; conflicts
	// beyond this surface as model.ErrConflict rather than spinning
	maxTransitionRetries = 3

	// maxCodeAttempts bounds room code regeneration on collision
	maxCodeAttempts = 5
)

// Manager owns room lifecycle transitions: create, join, leave,
// settings and discovery. Every mutation is a compare-and-set cycle
// against the store followed by exactly one snapshot publish.
type Manager struct {
	store  storage.RoomStore
	bus    bus.Bus
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewManager creates a new room lifecycle manager
func NewManager(
	store storage.RoomStore,
	eventBus bus.Bus,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		store:  store,
		bus:    eventBus,
		clock:  clock,
		random: random,
		logger: logger.With(slog.String("component", "room")),
	}
}

// Transition computes a room's next state in place and describes the
// event to publish. Returning an error aborts the transition; the
// function may run more than once if the CAS write loses a race, so it
// must recompute from the fresh state it is handed.
type Transition func(room *model.Room) (*model.Event, error)

// errNoChange aborts a transition without treating it as a failure
var errNoChange = errors.New("no change")

// Apply runs a bounded read-compute-CAS cycle against a room and
// publishes the resulting snapshot. This is the single concurrency
// primitive every mutating operation, including the turn engine's,
// is built on.
func (m *Manager) Apply(ctx context.Context, id model.RoomID, fn Transition) (*model.Room, error) {
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		current, err := m.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		event, err := fn(next)
		if err != nil {
			if errors.Is(err, errNoChange) {
				return current, nil
			}
			return nil, err
		}
		next.UpdatedAt = m.clock.Now()

		err = m.store.CompareAndSet(ctx, current.Version, next)
		if errors.Is(err, model.ErrVersionConflict) {
			m.logger.Debug("transition lost version race, retrying",
				slog.String("room_id", string(id)),
				slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}

		m.publish(ctx, next, event)
		return next, nil
	}

	return nil, model.ErrConflict
}

// publish sends the post-transition snapshot on the room's channel.
// Publish failures are logged, not surfaced: the transition has
// committed, and clients resynchronize from the next snapshot or a
// direct read.
func (m *Manager) publish(ctx context.Context, room *model.Room, event *model.Event) {
	if event == nil {
		return
	}
	event.RoomID = room.ID
	event.Version = room.Version
	event.Timestamp = room.UpdatedAt
	event.Room = *room.Clone()

	if err := m.bus.Publish(ctx, bus.RoomChannel(room.ID), *event); err != nil {
		m.logger.Warn("failed to publish room event",
			slog.String("room_id", string(room.ID)),
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()))
	}
}

// newPlayer constructs a player record with a fresh id and avatar
func (m *Manager) newPlayer(name string, isHost bool) model.Player {
	return model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		Name:     name,
		Avatar:   seaCreatures[m.random.Intn(len(seaCreatures))],
		Score:    0,
		Bubbles:  model.InitialBubbles,
		IsHost:   isHost,
		JoinedAt: m.clock.Now(),
	}
}

// CreateRoom creates a new room with the given player as host
func (m *Manager) CreateRoom(ctx context.Context, hostName string) (*model.Room, error) {
	now := m.clock.Now()
	host := m.newPlayer(hostName, true)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room := &model.Room{
			ID:        model.RoomID(m.random.String(CodeLength, CodeAlphabet)),
			HostID:    host.ID,
			Status:    model.RoomStatusWaiting,
			Settings:  model.DefaultSettings(),
			Players:   []model.Player{host},
			Version:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err := m.store.Insert(ctx, room)
		if errors.Is(err, model.ErrRoomExists) {
			continue // Code collision, regenerate
		}
		if err != nil {
			return nil, err
		}

		m.logger.Info("room created",
			slog.String("room_id", string(room.ID)),
			slog.String("host_id", string(host.ID)))

		m.publish(ctx, room, &model.Event{Type: model.EventRoomCreated})
		return room, nil
	}

	return nil, fmt.Errorf("%w: room code space exhausted after %d attempts", model.ErrConflict, maxCodeAttempts)
}

// GetRoom retrieves a room by id
func (m *Manager) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return m.store.Get(ctx, id)
}

// JoinRoom appends a new player to a waiting room. The player keeps the
// same id across CAS retries; the append is re-validated against the
// fresh room state on every attempt.
func (m *Manager) JoinRoom(ctx context.Context, id model.RoomID, playerName string) (*model.Room, error) {
	player := m.newPlayer(playerName, false)

	return m.Apply(ctx, id, func(room *model.Room) (*model.Event, error) {
		// Rooms past the lobby stage are invisible to joiners
		if room.Status != model.RoomStatusWaiting {
			return nil, model.ErrRoomNotFound
		}
		if room.IsFull() {
			return nil, model.ErrRoomFull
		}

		room.Players = append(room.Players, player)
		return &model.Event{Type: model.EventPlayerJoined}, nil
	})
}

// LeaveRoom removes a player from a room. Leaving an absent room, or a
// room the player is not in, is an idempotent no-op. Host and turn are
// handed to the next player in join order where needed; an emptied
// room transitions to finished.
func (m *Manager) LeaveRoom(ctx context.Context, id model.RoomID, playerID model.PlayerID) error {
	_, err := m.Apply(ctx, id, func(room *model.Room) (*model.Event, error) {
		idx := room.PlayerIndex(playerID)
		if idx == -1 {
			return nil, errNoChange
		}

		heldTurn := room.Status == model.RoomStatusPlaying && room.CurrentTurnPlayerID == playerID

		room.Players = lo.Reject(room.Players, func(p model.Player, _ int) bool {
			return p.ID == playerID
		})

		if len(room.Players) == 0 {
			room.Status = model.RoomStatusFinished
			room.CurrentTurnPlayerID = ""
			return &model.Event{Type: model.EventPlayerLeft}, nil
		}

		// Host passes to the earliest remaining joiner
		if room.HostID == playerID {
			room.HostID = room.Players[0].ID
			room.Players[0].IsHost = true
		}

		// A departing turn-holder hands the turn to whoever now sits
		// at their old rotation slot
		if heldTurn {
			room.CurrentTurnPlayerID = room.Players[idx%len(room.Players)].ID
			room.TurnStartedAt = m.clock.Now()
		}

		return &model.Event{Type: model.EventPlayerLeft}, nil
	})

	if errors.Is(err, model.ErrRoomNotFound) {
		return nil
	}
	return err
}

// SettingsPatch carries partial settings updates; nil fields are left
// unchanged
type SettingsPatch struct {
	MaxPlayers           *int
	Difficulty           *model.Difficulty
	TurnTimeLimitSeconds *int
}

// UpdateSettings merges a partial settings update into a waiting room.
// Only the host may update settings, and the player cap can never drop
// below the current player count.
func (m *Manager) UpdateSettings(ctx context.Context, id model.RoomID, requesterID model.PlayerID, patch SettingsPatch) (*model.Room, error) {
	return m.Apply(ctx, id, func(room *model.Room) (*model.Event, error) {
		if requesterID != room.HostID {
			return nil, model.ErrNotHost
		}
		if room.Status != model.RoomStatusWaiting {
			return nil, model.ErrInvalidState
		}

		if patch.MaxPlayers != nil {
			if *patch.MaxPlayers < len(room.Players) {
				return nil, fmt.Errorf("%w: max players %d below current player count %d",
					model.ErrInvalidSettings, *patch.MaxPlayers, len(room.Players))
			}
			room.Settings.MaxPlayers = *patch.MaxPlayers
		}
		if patch.Difficulty != nil {
			room.Settings.Difficulty = *patch.Difficulty
		}
		if patch.TurnTimeLimitSeconds != nil {
			room.Settings.TurnTimeLimitSeconds = *patch.TurnTimeLimitSeconds
		}

		return &model.Event{Type: model.EventSettingsUpdated}, nil
	})
}

// ListAvailableRooms returns discoverable rooms: waiting, not full, and
// touched within the retention window, newest first.
func (m *Manager) ListAvailableRooms(ctx context.Context) ([]*model.Room, error) {
	since := m.clock.Now().Add(-RetentionWindow)

	rooms, err := m.store.ListByStatusSince(ctx, model.RoomStatusWaiting, since)
	if err != nil {
		return nil, err
	}

	available := lo.Filter(rooms, func(r *model.Room, _ int) bool {
		return !r.IsFull()
	})

	sort.Slice(available, func(i, j int) bool {
		return available[i].CreatedAt.After(available[j].CreatedAt)
	})

	return available, nil
}

// Interface for dependency injection
type ManagerInterface interface {
	Apply(ctx context.Context, id model.RoomID, fn Transition) (*model.Room, error)
	CreateRoom(ctx context.Context, hostName string) (*model.Room, error)
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	JoinRoom(ctx context.Context, id model.RoomID, playerName string) (*model.Room, error)
	LeaveRoom(ctx context.Context, id model.RoomID, playerID model.PlayerID) error
	UpdateSettings(ctx context.Context, id model.RoomID, requesterID model.PlayerID, patch SettingsPatch) (*model.Room, error)
	ListAvailableRooms(ctx context.Context) ([]*model.Room, error)
}

var _ ManagerInterface = (*Manager)(nil)
