package notify

import (
	"log/slog"
	"sync"
)

const defaultCapacity = 50

// Hub is an in-process Notifier that keeps a bounded history of notices and
// fans new ones out to subscribers. Delivery is best effort: a subscriber
// whose channel is full misses the notice rather than blocking the store
// that emitted it.
type Hub struct {
	mu       sync.Mutex
	history  []Notification
	capacity int
	subs     map[int]chan Notification
	nextSub  int
	logger   *slog.Logger
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithCapacity bounds the retained history. Values below one are ignored.
func WithCapacity(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// WithHubLogger sets the logger for the Hub.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHub creates a notification hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		capacity: defaultCapacity,
		subs:     make(map[int]chan Notification),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Notify records the notice and delivers it to subscribers. Sends happen
// under the mutex so a subscriber cancelling concurrently can never close
// a channel mid-send; the sends are non-blocking, so holding the lock is
// bounded.
func (h *Hub) Notify(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, n)
	if len(h.history) > h.capacity {
		h.history = h.history[len(h.history)-h.capacity:]
	}
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
			h.logger.Warn("notification dropped for slow subscriber", slog.String("notification_id", n.ID))
		}
	}
}

// Subscribe returns a channel of future notices and a cancel function that
// unregisters the subscriber and closes the channel.
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)

	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// List returns the retained notices, oldest first.
func (h *Hub) List() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Notification, len(h.history))
	copy(out, h.history)
	return out
}

// Dismiss removes a notice from the history by ID.
func (h *Hub) Dismiss(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, n := range h.history {
		if n.ID == id {
			h.history = append(h.history[:i], h.history[i+1:]...)
			return
		}
	}
}
