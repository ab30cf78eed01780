package ports

import (
	"context"

	"library-backend/domain/events"
)

// EventPublisher pushes domain events to the bus. Publishing is best-effort
// from the caller's perspective: handlers log failures but do not roll back.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}
