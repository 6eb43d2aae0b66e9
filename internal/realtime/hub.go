package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
)

// Hub fans out newly submitted activity events to connected reviewer
// sessions. It is process-local: the service runs as a single instance and
// the feed is best-effort, so no broker is involved.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan dto.ActivityFeedEvent]struct{}
	logger      zerolog.Logger
}

// NewHub constructs an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan dto.ActivityFeedEvent]struct{}),
		logger:      logger.With().Str("component", "realtime_hub").Logger(),
	}
}

// Subscribe registers a listener and returns its event channel plus an
// unsubscribe function. The channel is buffered; slow listeners drop events
// rather than blocking submissions.
func (h *Hub) Subscribe() (<-chan dto.ActivityFeedEvent, func()) {
	ch := make(chan dto.ActivityFeedEvent, 8)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (h *Hub) Publish(event dto.ActivityFeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn().Uint("activity_id", event.ID).Msg("dropping feed event for slow subscriber")
		}
	}
}

// SubscriberCount reports the number of connected listeners.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
