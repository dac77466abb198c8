// Package events implements the in-process broadcast hub fanning panel
// updates out to every connected subscriber.
package events

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/providers"
	"github.com/wardwatch/statuspanel/internal/infrastructure/observability"
)

// subscriberBuffer is the per-subscriber event backlog. A subscriber
// that falls this far behind is treated as dead and pruned.
const subscriberBuffer = 64

type subscriber struct {
	id string
	ch chan *entities.PanelEvent
}

// PanelHub implements providers.Broadcaster for a single process.
// Subscribers are kept in registration order; publishing never blocks
// the caller.
type PanelHub struct {
	mu      sync.Mutex
	subs    []*subscriber
	closed  bool
	metrics *observability.Metrics
}

// NewPanelHub creates a hub. metrics may be nil.
func NewPanelHub(metrics *observability.Metrics) *PanelHub {
	return &PanelHub{metrics: metrics}
}

// Subscribe registers a new subscriber and queues snapshot as its first
// delivery. Registration and the snapshot enqueue happen under the hub
// lock, so every event published afterwards reaches the subscriber and
// nothing published before is replayed.
func (h *PanelHub) Subscribe(snapshot *entities.PanelEvent) (*providers.Subscription, error) {
	sub := &subscriber{
		id: uuid.NewString(),
		ch: make(chan *entities.PanelEvent, subscriberBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return nil, ErrHubClosed
	}
	h.subs = append(h.subs, sub)
	if snapshot != nil {
		sub.ch <- snapshot
	}
	total := len(h.subs)
	h.mu.Unlock()

	h.metrics.SubscriberConnected()
	log.Debug().Str("subscriber", sub.id).Int("total", total).Msg("subscriber registered")

	return &providers.Subscription{ID: sub.id, Events: sub.ch}, nil
}

// Unsubscribe removes a subscriber; idempotent
func (h *PanelHub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, sub := range h.subs {
		if sub.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			close(sub.ch)
			h.metrics.SubscriberGone()
			log.Debug().Str("subscriber", id).Int("remaining", len(h.subs)).Msg("subscriber removed")
			return
		}
	}
}

// Publish delivers event to every subscriber in registration order. A
// subscriber whose buffer is full has stopped draining; it is closed
// and removed so it cannot stall the burst or grow without bound.
func (h *PanelHub) Publish(event *entities.PanelEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	live := h.subs[:0]
	for _, sub := range h.subs {
		select {
		case sub.ch <- event:
			live = append(live, sub)
		default:
			close(sub.ch)
			h.metrics.SubscriberGone()
			h.metrics.SubscriberDropped()
			log.Warn().Str("subscriber", sub.id).Str("type", string(event.Type)).Msg("subscriber not draining, dropped")
		}
	}
	h.subs = live

	h.metrics.EventPublished(string(event.Type))
}

// SubscriberCount reports how many subscribers are registered
func (h *PanelHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber and rejects further subscriptions
func (h *PanelHub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for _, sub := range h.subs {
		close(sub.ch)
		h.metrics.SubscriberGone()
	}
	h.subs = nil
	return nil
}

var _ providers.Broadcaster = (*PanelHub)(nil)
