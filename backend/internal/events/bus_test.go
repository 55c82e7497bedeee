package events

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyBoardSubscribers(t *testing.T) {
	bus := NewBus(time.Minute)
	a, cancelA := bus.Subscribe("b1")
	defer cancelA()
	other, cancelOther := bus.Subscribe("b2")
	defer cancelOther()

	bus.Publish(api.Event{Type: api.EventCreated, Entity: "card", BoardId: "b1"})

	select {
	case msg := <-a:
		var got api.Event
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "card", got.Entity)
		assert.Equal(t, api.EventCreated, got.Type)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Empty(t, other)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	bus := NewBus(time.Minute)
	ch, cancel := bus.Subscribe("b1")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(api.Event{Type: api.EventUpdated, Entity: "card", BoardId: "b1"})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := NewBus(time.Minute)
	_, cancel := bus.Subscribe("b1")
	assert.Equal(t, 1, bus.Subscribers("b1"))
	cancel()
	cancel()
	assert.Equal(t, 0, bus.Subscribers("b1"))

	bus.Publish(api.Event{BoardId: "b1"})
}

func TestCloseEndsSubscriptions(t *testing.T) {
	bus := NewBus(time.Minute)
	ch, cancel := bus.Subscribe("b1")
	bus.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	late, _ := bus.Subscribe("b1")
	_, open = <-late
	assert.False(t, open)
}

func TestServeSSE(t *testing.T) {
	bus := NewBus(50 * time.Millisecond)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bus.ServeSSE(w, r, "b1")
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	require.Eventually(t, func() bool { return bus.Subscribers("b1") == 1 }, time.Second, 10*time.Millisecond)
	bus.Publish(api.Event{Type: api.EventMoved, Entity: "card", BoardId: "b1"})

	sawPing, sawData := false, false
	for !(sawPing && sawData) {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		switch {
		case strings.HasPrefix(line, ": ping"):
			sawPing = true
		case strings.HasPrefix(line, "data: "):
			var got api.Event
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &got))
			assert.Equal(t, api.EventMoved, got.Type)
			sawData = true
		}
	}
}
