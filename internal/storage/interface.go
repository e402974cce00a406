package storage

import (
	"context"
	"time"

	"github.com/wordtide/wordtide-go/internal/model"
)

// RoomStore is the persistence contract for room records. Concurrency
// control is optimistic: the only way to mutate an existing room is
// CompareAndSet, which succeeds for exactly one writer per version.
type RoomStore interface {
	// Get returns the current room record, including its version.
	// Returns model.ErrRoomNotFound if absent.
	Get(ctx context.Context, id model.RoomID) (*model.Room, error)

	// Insert persists a brand-new room as given.
	// Returns model.ErrRoomExists if the id is taken.
	Insert(ctx context.Context, room *model.Room) error

	// CompareAndSet writes room only if the stored version still equals
	// expectedVersion, bumping room.Version to expectedVersion+1 on
	// success. Returns model.ErrVersionConflict if another writer got
	// there first, model.ErrRoomNotFound if the room is gone.
	CompareAndSet(ctx context.Context, expectedVersion int64, room *model.Room) error

	// Delete removes a room; deleting an absent room is not an error.
	Delete(ctx context.Context, id model.RoomID) error

	// Exists reports whether a room id is taken.
	Exists(ctx context.Context, id model.RoomID) (bool, error)

	// ListByStatusSince returns rooms in the given status whose
	// UpdatedAt is at or after since. Order is unspecified.
	ListByStatusSince(ctx context.Context, status model.RoomStatus, since time.Time) ([]*model.Room, error)
}
