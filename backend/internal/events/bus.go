// Package events fans board change notifications out to Server-Sent Event
// streams. Delivery is best effort: a subscriber that falls behind loses
// events, and clients treat every event as a hint to refetch.
package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/flvvius/hackathon-sisc-2025/shared/middleware/metrics"
)

const subscriberBuffer = 16

type Bus struct {
	heartbeat time.Duration

	mu     sync.RWMutex
	subs   map[domain.BoardId]map[chan []byte]struct{}
	closed bool
}

func NewBus(heartbeat time.Duration) *Bus {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &Bus{heartbeat: heartbeat, subs: make(map[domain.BoardId]map[chan []byte]struct{})}
}

// Subscribe registers a channel for boardId. cancel must be called once the
// subscriber is done; it closes the channel.
func (b *Bus) Subscribe(boardId domain.BoardId) (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if b.subs[boardId] == nil {
		b.subs[boardId] = make(map[chan []byte]struct{})
	}
	b.subs[boardId][ch] = struct{}{}
	b.mu.Unlock()
	metrics.EventSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs, ok := b.subs[boardId]
			if !ok {
				return
			}
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, boardId)
			}
			close(ch)
			metrics.EventSubscribers.Dec()
		})
	}
}

// Publish never blocks; events for slow subscribers are dropped.
func (b *Bus) Publish(event api.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Component("events").Error("failed to marshal event", "error", err)
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[event.BoardId] {
		select {
		case ch <- data:
		default:
			metrics.EventsDropped.Inc()
		}
	}
}

// Subscribers reports how many streams are open for boardId.
func (b *Bus) Subscribers(boardId domain.BoardId) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[boardId])
}

// Close ends every open stream and rejects new subscribers.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for boardId, subs := range b.subs {
		for ch := range subs {
			close(ch)
			metrics.EventSubscribers.Dec()
		}
		delete(b.subs, boardId)
	}
}

// ServeSSE streams boardId's events to w until the request ends or the bus
// is closed. Authorization happens before this is called.
func (b *Bus) ServeSSE(w http.ResponseWriter, r *http.Request, boardId domain.BoardId) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch, cancel := b.Subscribe(boardId)
	defer cancel()

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			// comment line keeps proxies from closing an idle stream
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(append(append([]byte("data: "), msg...), '\n', '\n')); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
