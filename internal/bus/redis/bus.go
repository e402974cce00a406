package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
)

// Channel prefix keeps bus traffic apart from other keyspace users
const channelPrefix = "wordtide:events:"

// Buffer size for each subscriber's event channel
const subscriberBufferSize = 256

// Bus is a Redis pub/sub implementation of the bus interface, for
// running multiple server instances against one Redis.
type Bus struct {
	client *redis.Client
	logger *slog.Logger
}

// New creates a Redis-backed bus using an existing client
func New(client *redis.Client, logger *slog.Logger) *Bus {
	return &Bus{
		client: client,
		logger: logger.With(slog.String("component", "redis_bus")),
	}
}

// Ensure Bus implements the interface
var _ bus.Bus = (*Bus)(nil)

func (b *Bus) Publish(ctx context.Context, channel string, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, channelPrefix+channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrTransient, err)
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, channel string) (bus.Subscription, error) {
	ps := b.client.Subscribe(ctx, channelPrefix+channel)

	// Force the subscription onto the wire before returning, so events
	// published immediately after Subscribe are not missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("%w: %v", model.ErrTransient, err)
	}

	sub := &subscription{
		ps:     ps,
		events: make(chan model.Event, subscriberBufferSize),
	}

	go sub.pump(b.logger)

	return sub, nil
}

type subscription struct {
	ps     *redis.PubSub
	events chan model.Event
	once   sync.Once
}

// pump translates raw pub/sub messages into events until the
// underlying subscription closes
func (s *subscription) pump(logger *slog.Logger) {
	for msg := range s.ps.Channel() {
		var event model.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			logger.Warn("dropping undecodable event", slog.String("error", err.Error()))
			continue
		}
		select {
		case s.events <- event:
		default:
			logger.Warn("event dropped - subscriber buffer full",
				slog.String("channel", msg.Channel))
		}
	}
	close(s.events)
}

func (s *subscription) Events() <-chan model.Event {
	return s.events
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.ps.Close()
	})
	return err
}
