package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultSubscriberBuffer = 16

// Hub broadcasts events to every connected subscriber. Slow subscribers
// lose events rather than block the publisher.
type Hub struct {
	logger *logrus.Logger
	buffer int

	mu     sync.RWMutex
	subs   map[uint64]chan Event
	nextID uint64
	closed bool
}

// NewHub creates a hub whose subscribers each buffer up to buffer events.
func NewHub(logger *logrus.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &Hub{
		logger: logger,
		buffer: buffer,
		subs:   make(map[uint64]chan Event),
	}
}

// Subscribe registers a new subscriber. The returned channel is closed when
// the subscriber unsubscribes or the hub closes.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish encodes payload once and offers it to every subscriber.
func (h *Hub) Publish(_ context.Context, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode event payload")
		return
	}
	evt := Event{ID: uuid.NewString(), Name: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for _, ch := range h.subs {
		select {
		case ch <- evt:
		default:
			dropped++
		}
	}

	entry := h.logger.WithFields(logrus.Fields{
		"event":       event,
		"event_id":    evt.ID,
		"subscribers": len(h.subs),
	})
	if dropped > 0 {
		entry.WithField("dropped", dropped).Warn("Event dropped for slow subscribers")
		return
	}
	entry.Debug("Event published")
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
