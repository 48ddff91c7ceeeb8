package providers

import (
	"context"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// EventBus defines the interface for publishing and consuming hospital
// registry events across service instances.
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.HospitalEvent) error

	// Subscribe subscribes to events on a channel. The returned channel is
	// closed when ctx is cancelled or the bus shuts down.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.HospitalEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}
