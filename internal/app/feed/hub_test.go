package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/app/session"
)

// serveFeed starts a server that subscribes every connection to hub under the given session.
func serveFeed(t *testing.T, hub *Hub, sess *session.Session) string {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, sess)
		if !hub.Register(client) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishReachesAllClients(t *testing.T) {
	hub := NewHub()
	t.Cleanup(hub.Shutdown)

	url := serveFeed(t, hub, &session.Session{ID: "s1", UserID: 1})
	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Publish("tweet_created", map[string]any{"id": 1, "text": "hello"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var ev struct {
			ID      string         `json:"id"`
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, "tweet_created", ev.Type)
		assert.Equal(t, "hello", ev.Payload["text"])
		assert.NotEmpty(t, ev.ID)
	}
}

func TestHub_CloseSessionDisconnectsOnlyThatSession(t *testing.T) {
	hub := NewHub()
	t.Cleanup(hub.Shutdown)

	loggedOut := dial(t, serveFeed(t, hub, &session.Session{ID: "gone", UserID: 1}))
	stays := dial(t, serveFeed(t, hub, &session.Session{ID: "kept", UserID: 2}))
	waitForClients(t, hub, 2)

	hub.CloseSession("gone")

	require.NoError(t, loggedOut.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := loggedOut.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, CloseCodeLoggedOut), "got %v", err)

	waitForClients(t, hub, 1)

	hub.Publish("tweet_deleted", map[string]int64{"id": 3})
	require.NoError(t, stays.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := stays.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tweet_deleted")
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	t.Cleanup(hub.Shutdown)

	conn := dial(t, serveFeed(t, hub, &session.Session{ID: "s", UserID: 1}))
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()

	conn := dial(t, serveFeed(t, hub, &session.Session{ID: "s", UserID: 1}))
	waitForClients(t, hub, 1)

	hub.Shutdown()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, CloseCodeShutdown), "got %v", err)

	assert.NotPanics(t, func() {
		hub.Publish("tweet_created", nil)
		hub.CloseSession("s")
		hub.Shutdown()
	})
	assert.False(t, hub.Register(&Client{send: make(chan []byte)}))
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent("tweet_created", 7)
	assert.Equal(t, "tweet_created", ev.Type)
	assert.Equal(t, 7, ev.Payload)
	assert.NotEmpty(t, ev.ID)
	assert.InDelta(t, time.Now().UnixMilli(), ev.Timestamp, 5000)
}
