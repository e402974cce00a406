package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordtide/wordtide-go/internal/bus"
	"github.com/wordtide/wordtide-go/internal/model"
	"github.com/wordtide/wordtide-go/internal/services/room"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestLexicon())
}

// setPattern forces the live pattern so submissions are predictable
func (s *IntegrationSuite) setPattern(id model.RoomID, pattern string) {
	room, err := s.app.Store.Get(s.ctx, id)
	s.Require().NoError(err)
	room.Pattern = pattern
	s.Require().NoError(s.app.Store.CompareAndSet(s.ctx, room.Version, room))
}

// Test: complete match flow from room creation to game over
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	s.app.MockRandom.QueueString("TIDE42")

	// Create a room and bring in a second player
	created, err := s.app.RoomManager.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.RoomID("TIDE42"), created.ID)
	aliceID := created.HostID

	joined, err := s.app.RoomManager.JoinRoom(s.ctx, created.ID, "Bob")
	s.Require().NoError(err)
	bobID := joined.Players[1].ID

	// The host tightens the settings, then starts
	hard := model.DifficultyHard
	_, err = s.app.RoomManager.UpdateSettings(s.ctx, created.ID, aliceID, room.SettingsPatch{Difficulty: &hard})
	s.Require().NoError(err)

	// Watch the room's event channel for the rest of the match
	sub, err := s.app.Bus.Subscribe(s.ctx, bus.RoomChannel(created.ID))
	s.Require().NoError(err)
	defer func() { _ = sub.Close() }()

	started, err := s.app.TurnEngine.Start(s.ctx, created.ID, aliceID)
	s.Require().NoError(err)
	s.Equal(model.RoomStatusPlaying, started.Status)
	s.Equal(aliceID, started.CurrentTurnPlayerID)

	event := <-sub.Events()
	s.Equal(model.EventGameStarted, event.Type)

	// Alice answers instantly on hard difficulty: 30 * 2.0 * 1.5
	s.setPattern(created.ID, "ca")
	afterWord, points, err := s.app.TurnEngine.SubmitWord(s.ctx, created.ID, aliceID, "cat")
	s.Require().NoError(err)
	s.Equal(90, points)
	s.Equal(90, afterWord.GetPlayer(aliceID).Score)
	s.Equal(bobID, afterWord.CurrentTurnPlayerID)

	event = <-sub.Events()
	s.Equal(model.EventWordAccepted, event.Type)
	s.Require().NotNil(event.Turn)
	s.Equal("cat", event.Turn.Word)

	// Bob stalls long enough to flood the room
	s.app.MockClock.Advance(time.Minute)
	final, err := s.app.TurnEngine.Skip(s.ctx, created.ID, bobID)
	s.Require().NoError(err)
	s.Equal(model.RoomStatusFinished, final.Status)

	event = <-sub.Events()
	s.Equal(model.EventGameOver, event.Type)
	s.Equal(aliceID, event.Winner)

	// A finished room rejects further play
	_, _, err = s.app.TurnEngine.SubmitWord(s.ctx, created.ID, aliceID, "catch")
	s.ErrorIs(err, model.ErrInvalidState)
}

// Test: the last player leaving a live match finishes it
func (s *IntegrationSuite) TestAbandonedMatchFinishes() {
	s.app.MockRandom.QueueString("TIDE42")

	created, err := s.app.RoomManager.CreateRoom(s.ctx, "Alice")
	s.Require().NoError(err)
	aliceID := created.HostID

	joined, err := s.app.RoomManager.JoinRoom(s.ctx, created.ID, "Bob")
	s.Require().NoError(err)
	bobID := joined.Players[1].ID

	_, err = s.app.TurnEngine.Start(s.ctx, created.ID, aliceID)
	s.Require().NoError(err)

	s.Require().NoError(s.app.RoomManager.LeaveRoom(s.ctx, created.ID, aliceID))
	s.Require().NoError(s.app.RoomManager.LeaveRoom(s.ctx, created.ID, bobID))

	room, err := s.app.RoomManager.GetRoom(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(model.RoomStatusFinished, room.Status)
	s.Empty(room.Players)

	_, _, err = s.app.TurnEngine.SubmitWord(s.ctx, created.ID, aliceID, "cat")
	s.ErrorIs(err, model.ErrInvalidState)
}
