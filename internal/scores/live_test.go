package scores

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveFeed_BroadcastsSubmissions(t *testing.T) {
	srv, hub := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello LiveMessage
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello.Type)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	remote := NewHTTPStore(ts.URL)
	defer remote.Close()
	saved, err := remote.Submit(NewRecord("gauntlet", "ada", 14.2, 4, 196))
	require.NoError(t, err)

	var msg LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "score", msg.Type)
	require.NotNil(t, msg.Record)
	assert.Equal(t, saved.ID, msg.Record.ID)
	assert.Equal(t, "ada", msg.Record.Player)
}

func TestHub_DisconnectRemovesSpectator(t *testing.T) {
	srv, hub := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Broadcasting with nobody listening is a no-op.
	hub.Broadcast(NewRecord("gauntlet", "ada", 1, 0, 0))
}
