package wsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelaySequence(t *testing.T) {
	var delays []time.Duration
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		delays = append(delays, backoffDelay(attempt))
	}

	assert.Equal(t, baseDelay, delays[0])
	for i := 1; i < len(delays); i++ {
		assert.GreaterOrEqual(t, delays[i], delays[i-1], "backoff must be non-decreasing")
	}
	for _, d := range delays {
		assert.LessOrEqual(t, d, maxDelay)
	}
}

func TestDialDelayWaitsBaseAfterDisconnect(t *testing.T) {
	// The first dial of a session is immediate; once a connection has
	// dropped, the next dial waits the base delay before escalating.
	assert.Equal(t, time.Duration(0), dialDelay(0, false))
	assert.Equal(t, baseDelay, dialDelay(0, true))
	assert.Equal(t, baseDelay, dialDelay(1, true))
	assert.Equal(t, 2*baseDelay, dialDelay(2, true))
}

func TestConnectGoesOfflineAfterBudget(t *testing.T) {
	c := New("ws://127.0.0.1:1/ws", "token")
	c.attempts = maxAttempts

	err := c.connect(context.Background())

	require.Error(t, err)
	assert.True(t, c.Offline())

	c.Reconnect()

	assert.False(t, c.Offline())
	assert.Equal(t, 0, c.attempts)
}

func TestConnectAuthenticatesAndRejoinsLastConversation(t *testing.T) {
	frames := make(chan event, 2)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for i := 0; i < 2; i++ {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev event
			require.NoError(t, json.Unmarshal(payload, &ev))
			frames <- ev
		}
	}))
	defer srv.Close()

	c := New("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", "token")
	c.lastConversation = "c1"

	require.NoError(t, c.connect(context.Background()))
	defer c.Close()

	first := <-frames
	assert.Equal(t, "authenticate", first.Type)

	second := <-frames
	assert.Equal(t, "join_conversation", second.Type)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(second.Data, &payload))
	assert.Equal(t, "c1", payload["conversation_id"])

	assert.Equal(t, 0, c.attempts, "successful connect must reset the backoff counter")
	assert.True(t, c.wasConnected, "later dials must treat the session as a reconnect")
}
