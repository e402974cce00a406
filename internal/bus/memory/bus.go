package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
)

// Buffer size for each subscriber's event channel
const subscriberBufferSize = 256

// Bus is an in-process implementation of the bus interface. Slow
// subscribers have events dropped rather than blocking publishers,
// which is fine: every event carries a full snapshot, so the next
// delivered event resynchronizes the consumer.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	logger *slog.Logger
}

// New creates a new in-memory bus
func New(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string]map[*subscription]struct{}),
		logger: logger.With(slog.String("component", "bus")),
	}
}

// Ensure Bus implements the interface
var _ bus.Bus = (*Bus)(nil)

type subscription struct {
	bus     *Bus
	channel string
	events  chan model.Event
	once    sync.Once
}

func (s *subscription) Events() <-chan model.Event {
	return s.events
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.events)
	})
	return nil
}

func (b *Bus) Publish(ctx context.Context, channel string, event model.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for sub := range b.subs[channel] {
		select {
		case sub.events <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.Warn("events dropped - subscriber buffer full",
			slog.String("channel", channel),
			slog.Int("dropped", dropped))
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, channel string) (bus.Subscription, error) {
	sub := &subscription{
		bus:     b,
		channel: channel,
		events:  make(chan model.Event, subscriberBufferSize),
	}

	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*subscription]struct{})
	}
	b.subs[channel][sub] = struct{}{}
	b.mu.Unlock()

	return sub, nil
}

func (b *Bus) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.subs[sub.channel]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.channel)
		}
	}
}

// SubscriberCount returns the number of subscribers on a channel
func (b *Bus) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
