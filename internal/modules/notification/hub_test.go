package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Broadcasts and keepalive pings write to the same socket from different
// goroutines; both must go through the connection's write lock.
func TestHub_ConcurrentBroadcastAndPing(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	clients := make(chan *client, 1)
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		clients <- hub.Register(7, conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	cl := <-clients

	const rounds = 20
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Broadcast(&Event{Type: EventBookingCreated, OccurredAt: time.Now().UTC()})
		}()
		go func() {
			defer wg.Done()
			_ = cl.ping()
		}()
	}
	wg.Wait()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < rounds; i++ {
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, EventBookingCreated, ev.Type)
	}
	assert.Equal(t, 1, hub.OnlineCount())
}
