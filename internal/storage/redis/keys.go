package redis

import (
	"fmt"

	"github.com/wordtide/wordtide-go/internal/model"
)

// Key prefix for all room data
const keyPrefix = "wordtide"

// roomKey returns the Redis key for a Room record
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// statusIndexKey returns the Redis key for the SET of room ids in a status
func statusIndexKey(status model.RoomStatus) string {
	return fmt.Sprintf("%s:idx:status:%s", keyPrefix, status)
}
