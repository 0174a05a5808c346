package interfaces

import (
	"context"

	"lotocart/domain/entities"
	"lotocart/domain/events"
)

// CartRepository defines the interface for session cart persistence
type CartRepository interface {
	// Create creates and persists an empty cart under a fresh session id
	Create(ctx context.Context) (*entities.Cart, error)

	// Get retrieves the cart for a session, or nil when the session is unknown
	Get(ctx context.Context, sessionID string) (*entities.Cart, error)

	// Save persists the cart. Saves carrying a stale version fail with
	// ErrStaleCart so late responses cannot overwrite newer session state.
	Save(ctx context.Context, cart *entities.Cart) error

	// Delete removes a session's cart entirely
	Delete(ctx context.Context, sessionID string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
