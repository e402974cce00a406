package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *goredis.Client
	bus    *Bus
	ctx    context.Context
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.bus = New(s.client, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *BusSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func (s *BusSuite) receive(sub bus.Subscription) model.Event {
	select {
	case event, ok := <-sub.Events():
		s.Require().True(ok, "subscription closed unexpectedly")
		return event
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return model.Event{}
	}
}

func (s *BusSuite) TestPublishReachesSubscriber() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	err = s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{
		Type:    model.EventWordAccepted,
		RoomID:  "AAAAAA",
		Version: 7,
		Room:    model.Room{ID: "AAAAAA", Status: model.RoomStatusPlaying},
	})
	s.Require().NoError(err)

	event := s.receive(sub)
	s.Equal(model.EventWordAccepted, event.Type)
	s.Equal(int64(7), event.Version)
	s.Equal(model.RoomStatusPlaying, event.Room.Status)
}

func (s *BusSuite) TestChannelsAreIsolated() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	s.Require().NoError(s.bus.Publish(s.ctx, bus.RoomChannel("BBBBBB"), model.Event{Type: model.EventGameStarted}))

	select {
	case <-sub.Events():
		s.FailNow("received event from another room's channel")
	case <-time.After(100 * time.Millisecond):
	}
}

func (s *BusSuite) TestClosedSubscriptionStopsReceiving() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	s.Require().NoError(sub.Close())

	select {
	case _, ok := <-sub.Events():
		s.False(ok, "events channel should be closed after Close")
	case <-time.After(2 * time.Second):
		s.FailNow("events channel never closed")
	}
}

func (s *BusSuite) TestCloseIsIdempotent() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	s.NoError(sub.Close())
	s.NoError(sub.Close())
}

func (s *BusSuite) TestUndecodablePayloadIsSkipped() {
	sub, err := s.bus.Subscribe(s.ctx, bus.RoomChannel("AAAAAA"))
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	s.client.Publish(s.ctx, channelPrefix+bus.RoomChannel("AAAAAA"), "not json")
	s.Require().NoError(s.bus.Publish(s.ctx, bus.RoomChannel("AAAAAA"), model.Event{Type: model.EventGameOver}))

	event := s.receive(sub)
	s.Equal(model.EventGameOver, event.Type)
}
