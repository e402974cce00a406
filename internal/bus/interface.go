package bus

import (
	"context"

	"github.com/wordtide/wordtide-go/internal/model"
)

// Bus is the per-room publish/subscribe contract. Delivery is
// at-least-once and best-effort ordered; consumers must treat each
// event's Room snapshot as authoritative and discard stale versions.
type Bus interface {
	// Publish sends an event to all current subscribers of a channel
	Publish(ctx context.Context, channel string, event model.Event) error

	// Subscribe returns a subscription streaming the channel's events
	// until closed
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Subscription is a consumer-cancelable event stream
type Subscription interface {
	// Events yields published events; the channel closes when the
	// subscription is closed
	Events() <-chan model.Event

	// Close stops delivery and releases the subscription
	Close() error
}

// RoomChannel returns the channel name for a room's events
func RoomChannel(id model.RoomID) string {
	return "room:" + string(id)
}
