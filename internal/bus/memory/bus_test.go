package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	bus *Bus
	ctx context.Context
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.bus = New(testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *BusSuite) receive(sub bus.Subscription) model.Event {
	select {
	case event, ok := <-sub.Events():
		s.Require().True(ok, "subscription closed unexpectedly")
		return event
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for event")
		return model.Event{}
	}
}

func (s *BusSuite) TestPublishReachesSubscriber() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	err = s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{
		Type:    model.EventPlayerJoined,
		RoomID:  "AAAAAA",
		Version: 3,
	})
	s.Require().NoError(err)

	event := s.receive(sub)
	s.Equal(model.EventPlayerJoined, event.Type)
	s.Equal(int64(3), event.Version)
}

func (s *BusSuite) TestPublishReachesAllSubscribers() {
	sub1, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	sub2, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	defer func() { _ = sub1.Close() }()
	defer func() { _ = sub2.Close() }()

	_ = s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{Type: model.EventGameStarted})

	s.Equal(model.EventGameStarted, s.receive(sub1).Type)
	s.Equal(model.EventGameStarted, s.receive(sub2).Type)
}

func (s *BusSuite) TestChannelsAreIsolated() {
	sub, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	defer func() { _ = sub.Close() }()

	_ = s.bus.Publish(s.ctx, bus.RoomChannel("BBBBBB"), model.Event{Type: model.EventGameStarted})

	select {
	case <-sub.Events():
		s.FailNow("received event from another room's channel")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *BusSuite) TestPublishWithoutSubscribersSucceeds() {
	err := s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{Type: model.EventRoomCreated})
	s.NoError(err)
}

func (s *BusSuite) TestClosedSubscriptionStopsReceiving() {
	sub, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(sub.Close())

	_, ok := <-sub.Events()
	s.False(ok, "events channel should be closed")

	s.Equal(0, s.bus.SubscriberCount(bus.RoomChannel("AAAAAA")))
	s.NoError(s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{Type: model.EventGameOver}))
}

func (s *BusSuite) TestCloseIsIdempotent() {
	sub, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.NoError(sub.Close())
	s.NoError(sub.Close())
}

func (s *BusSuite) TestSlowSubscriberDropsInsteadOfBlocking() {
	sub, _ := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	defer func() { _ = sub.Close() }()

	// Overfill the subscriber buffer without draining it
	for i := 0; i < subscriberBufferSize+10; i++ {
		err := s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{
			Type:    model.EventWordAccepted,
			Version: int64(i),
		})
		s.Require().NoError(err)
	}

	// The buffered prefix is still delivered in order
	first := s.receive(sub)
	s.Equal(int64(0), first.Version)
}
