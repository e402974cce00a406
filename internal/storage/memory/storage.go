package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/storage"
)

// Storage is an in-memory implementation of the RoomStore interface.
// Rooms are cloned on the way in and out so callers can never observe
// each other's mutations except through CompareAndSet.
type Storage struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*model.Room
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomID]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) Insert(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return model.ErrRoomExists
	}
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *Storage) CompareAndSet(ctx context.Context, expectedVersion int64, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.rooms[room.ID]
	if !ok {
		return model.ErrRoomNotFound
	}
	if current.Version != expectedVersion {
		return model.ErrVersionConflict
	}
	room.Version = expectedVersion + 1
	s.rooms[room.ID] = room.Clone()
	return nil
}

func (s *Storage) Delete(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Storage) Exists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

func (s *Storage) ListByStatusSince(ctx context.Context, status model.RoomStatus, since time.Time) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rooms []*model.Room
	for _, room := range s.rooms {
		if room.Status == status && !room.UpdatedAt.Before(since) {
			rooms = append(rooms, room.Clone())
		}
	}
	return rooms, nil
}
