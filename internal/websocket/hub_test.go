package websocket

import (
	"testing"
	"time"

	"routine-advisor-be/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, sessionID string) *Client {
	c := &Client{Hub: h, SessionID: sessionID, Send: make(chan []byte, 8)}
	h.register <- c
	return c
}

func TestHub_SendReachesOnlyThatSession(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run()

	a := newTestClient(h, "a")
	b := newTestClient(h, "b")
	require.Eventually(t, func() bool { return h.ClientCount("a") == 1 && h.ClientCount("b") == 1 }, time.Second, 5*time.Millisecond)

	h.Send("a", []byte(`{"type":"widget_update"}`))

	select {
	case msg := <-a.Send:
		assert.JSONEq(t, `{"type":"widget_update"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("session a got nothing")
	}
	assert.Len(t, b.Send, 0)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run()

	c := newTestClient(h, "a")
	require.Eventually(t, func() bool { return h.ClientCount("a") == 1 }, time.Second, 5*time.Millisecond)

	h.unregister <- c
	require.Eventually(t, func() bool { return h.ClientCount("a") == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_FansOutAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	newRedis := func() *redis.Client {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rdb.Close() })
		return rdb
	}

	sender := NewHub(newRedis(), logger.NewNopLogger())
	receiver := NewHub(newRedis(), logger.NewNopLogger())
	go sender.Run()
	go receiver.Run()

	remote := newTestClient(receiver, "s1")
	require.Eventually(t, func() bool { return receiver.ClientCount("s1") == 1 }, time.Second, 5*time.Millisecond)

	// The subscription is set up asynchronously; keep sending until it lands.
	assert.Eventually(t, func() bool {
		sender.Send("s1", []byte(`{"n":1}`))
		select {
		case msg := <-remote.Send:
			return string(msg) == `{"n":1}`
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
