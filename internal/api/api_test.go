package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtide/wordtide-go/internal/api"
	"github.com/wordtide/wordtide-go/internal/api/response"
	"github.com/wordtide/wordtide-go/internal/factory"
	"github.com/wordtide/wordtide-go/internal/model"
)

// testServer wires the full router on top of a mocked test app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestLexicon())

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		RoomManager: app.RoomManager,
		TurnEngine:  app.TurnEngine,
		Bus:         app.Bus,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createRoom creates a room through the API and returns its snapshot
func (ts *testServer) createRoom(t *testing.T, code, hostName string) response.Room {
	t.Helper()

	ts.app.MockRandom.QueueString(code)
	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"host_name": hostName})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	return room
}

// joinRoom joins through the API and returns the joined player's id
func (ts *testServer) joinRoom(t *testing.T, code, playerName string) (response.Room, string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+code+"/join", map[string]string{"player_name": playerName})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	return room, room.Players[len(room.Players)-1].ID
}

// setPattern forces a room's live pattern directly in storage
func (ts *testServer) setPattern(t *testing.T, code, pattern string) {
	t.Helper()

	ctx := context.Background()
	room, err := ts.app.Store.Get(ctx, model.RoomID(code))
	require.NoError(t, err)
	room.Pattern = pattern
	require.NoError(t, ts.app.Store.CompareAndSet(ctx, room.Version, room))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	room := ts.createRoom(t, "ABC234", "Alice")

	assert.Equal(t, "ABC234", room.ID)
	assert.Equal(t, "waiting", room.Status)
	assert.Len(t, room.Players, 1)
	assert.Equal(t, "Alice", room.Players[0].Name)
	assert.True(t, room.Players[0].IsHost)
	assert.Equal(t, room.Players[0].ID, room.HostID)
	assert.Equal(t, 4, room.Settings.MaxPlayers)
	assert.Equal(t, "normal", room.Settings.Difficulty)
	assert.Equal(t, int64(0), room.Version)
	assert.Nil(t, room.TurnStartedAt)
}

func TestCreateRoomRejectsMissingName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestGetRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/ABC234", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, "ABC234", room.ID)
}

func TestGetRoomIsCaseInsensitive(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/abc234", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/ZZZZZZ", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_NOT_FOUND")
}

func TestListRooms(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")
	ts.app.MockClock.Advance(time.Second)
	ts.createRoom(t, "DEF567", "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/rooms", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.RoomList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Rooms, 2)

	// Newest first
	assert.Equal(t, "DEF567", list.Rooms[0].ID)
	assert.Equal(t, "Bob", list.Rooms[0].HostName)
	assert.Equal(t, 1, list.Rooms[0].PlayerCount)
}

func TestJoinRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")

	room, bobID := ts.joinRoom(t, "ABC234", "Bob")

	assert.Len(t, room.Players, 2)
	assert.Equal(t, "Bob", room.Players[1].Name)
	assert.False(t, room.Players[1].IsHost)
	assert.NotEmpty(t, bobID)
	assert.Equal(t, int64(1), room.Version)
}

func TestJoinFullRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")
	ts.joinRoom(t, "ABC234", "Bob")
	ts.joinRoom(t, "ABC234", "Carol")
	ts.joinRoom(t, "ABC234", "Dave")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/join", map[string]string{"player_name": "Eve"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")
}

func TestJoinUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ZZZZZZ/join", map[string]string{"player_name": "Eve"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaveRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")
	_, bobID := ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/leave", map[string]string{"player_id": bobID})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/ABC234", nil)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Len(t, room.Players, 1)
}

func TestUpdateSettings(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")

	body := map[string]any{
		"requester_id": created.HostID,
		"difficulty":   "hard",
	}
	rr := ts.request(http.MethodPatch, "/api/v1/rooms/ABC234/settings", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	var settings response.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &settings))
	assert.Equal(t, "hard", settings.Difficulty)

	// Untouched fields keep their defaults
	assert.Equal(t, 4, settings.MaxPlayers)
	assert.Equal(t, 30, settings.TurnTimeLimitSeconds)
}

func TestUpdateSettingsRequiresHost(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")
	_, bobID := ts.joinRoom(t, "ABC234", "Bob")

	body := map[string]any{
		"requester_id": bobID,
		"difficulty":   "easy",
	}
	rr := ts.request(http.MethodPatch, "/api/v1/rooms/ABC234/settings", body)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")
}

func TestUpdateSettingsRejectsBadDifficulty(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")

	body := map[string]any{
		"requester_id": created.HostID,
		"difficulty":   "nightmare",
	}
	rr := ts.request(http.MethodPatch, "/api/v1/rooms/ABC234/settings", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStartGame(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")
	ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	assert.Equal(t, http.StatusOK, rr.Code)

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, "playing", room.Status)
	assert.Equal(t, created.HostID, room.CurrentTurnPlayerID)
	assert.NotEmpty(t, room.Pattern)
	assert.NotNil(t, room.TurnStartedAt)
}

func TestStartGameAloneFails(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_ENOUGH_PLAYERS")
}

func TestSubmitWord(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")
	_, bobID := ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.setPattern(t, "ABC234", "ca")

	body := map[string]string{"player_id": created.HostID, "word": "cat"}
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABC234/submit", body)
	assert.Equal(t, http.StatusOK, rr.Code)

	var result response.SubmitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Accepted)
	assert.Equal(t, 68, result.Points)
	assert.Equal(t, 68, result.Room.Players[0].Score)
	assert.Equal(t, bobID, result.Room.CurrentTurnPlayerID)
}

func TestSubmitWordOutOfTurn(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")
	_, bobID := ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.setPattern(t, "ABC234", "ca")

	body := map[string]string{"player_id": bobID, "word": "cat"}
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABC234/submit", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")
}

func TestSubmitUnknownWord(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")
	ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	require.Equal(t, http.StatusOK, rr.Code)
	ts.setPattern(t, "ABC234", "ca")

	body := map[string]string{"player_id": created.HostID, "word": "cazzz"}
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABC234/submit", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_WORD")
}

func TestSubmitBeforeStart(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")

	body := map[string]string{"player_id": created.HostID, "word": "cat"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/submit", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_STATE")
}

func TestSkipTurn(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "ABC234", "Alice")
	_, bobID := ts.joinRoom(t, "ABC234", "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABC234/start", map[string]string{"requester_id": created.HostID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABC234/skip", map[string]string{"player_id": created.HostID})
	assert.Equal(t, http.StatusOK, rr.Code)

	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, bobID, room.CurrentTurnPlayerID)
	assert.Equal(t, 2, room.Players[0].Bubbles)
}

func TestEventStreamSendsSnapshot(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "ABC234", "Alice")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/ABC234/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ts.handler.ServeHTTP(rr, req)
	}()
	cancel()
	<-done

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "event: snapshot")
	assert.Contains(t, rr.Body.String(), `"room_id":"ABC234"`)
}

func TestEventStreamForUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/ZZZZZZ/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
