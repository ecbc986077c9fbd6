package roomhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelaygo/internal/metrics"
	"chatrelaygo/internal/ws"
)

func startServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub(metrics.NewRelay(prometheus.NewRegistry()))
	wsSrv := ws.NewWsServer(hub, 16)

	engine := gin.New()
	engine.GET("/ws", wsSrv.Handle)
	New(hub).Register(engine)

	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)
	return ts, hub
}

func joinRoom(t *testing.T, ts *httptest.Server, hub *ws.Hub, room string, members int) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil {
		_ = resp.Body.Close()
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("JOIN_ROOM:"+room)))
	require.Eventually(t, func() bool {
		n, ok := hub.MemberCount(room)
		return ok && n == members
	}, 2*time.Second, 10*time.Millisecond)
	return conn
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestListRoomsEmpty(t *testing.T) {
	ts, _ := startServer(t)

	var rooms []RoomResponse
	status := getJSON(t, ts, "/rooms", &rooms)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, rooms)
}

func TestListRoomsReflectsLiveMembership(t *testing.T) {
	ts, hub := startServer(t)
	joinRoom(t, ts, hub, "lobby", 1)
	joinRoom(t, ts, hub, "lobby", 2)
	joinRoom(t, ts, hub, "den", 1)

	var rooms []RoomResponse
	status := getJSON(t, ts, "/rooms", &rooms)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []RoomResponse{
		{Name: "den", Members: 1},
		{Name: "lobby", Members: 2},
	}, rooms)
}

func TestListRoomsPagination(t *testing.T) {
	ts, hub := startServer(t)
	joinRoom(t, ts, hub, "alpha", 1)
	joinRoom(t, ts, hub, "beta", 1)
	joinRoom(t, ts, hub, "gamma", 1)

	var rooms []RoomResponse
	status := getJSON(t, ts, "/rooms?limit=1&offset=1", &rooms)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []RoomResponse{{Name: "beta", Members: 1}}, rooms)

	status = getJSON(t, ts, "/rooms?offset=100", &rooms)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, rooms)
}

func TestListRoomsRejectsBadQuery(t *testing.T) {
	ts, _ := startServer(t)
	status := getJSON(t, ts, "/rooms?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRoomInfo(t *testing.T) {
	ts, hub := startServer(t)
	joinRoom(t, ts, hub, "lobby", 1)

	var room RoomResponse
	status := getJSON(t, ts, "/rooms/lobby", &room)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, RoomResponse{Name: "lobby", Members: 1}, room)

	status = getJSON(t, ts, "/rooms/ghost", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
