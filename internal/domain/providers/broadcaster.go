package providers

import (
	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

// Subscription represents one live connection receiving panel updates.
// Events arrives in publish order; the channel is closed when the
// subscriber is removed, whether by Unsubscribe or by the hub pruning a
// connection that stopped draining.
type Subscription struct {
	ID     string
	Events <-chan *entities.PanelEvent
}

// Broadcaster fans panel events out to every connected subscriber.
type Broadcaster interface {
	// Subscribe registers a new subscriber. The supplied snapshot event
	// is queued as the subscriber's first delivery before any update
	// published after registration, so no update is both part of the
	// snapshot baseline and re-delivered incrementally.
	Subscribe(snapshot *entities.PanelEvent) (*Subscription, error)

	// Unsubscribe removes a subscriber; idempotent
	Unsubscribe(id string)

	// Publish delivers event to all current subscribers in registration
	// order, best-effort. A subscriber that cannot accept the event is
	// dropped; delivery to the rest proceeds and the caller never sees
	// an error.
	Publish(event *entities.PanelEvent)

	// Close drops all subscribers and stops the hub
	Close() error
}
