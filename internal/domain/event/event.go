// Package event defines domain events and the publishing contract.
// Events are written to a transactional outbox in the same transaction
// as the state change; a background relay pushes them to the broker.
package event

import (
	"context"

	"tokopos/internal/core/id"
)

// Event types emitted by the domain services.
const (
	TypeStockAdjusted = "inventory.stock_adjusted"
	TypeSaleCreated   = "sales.sale_created"
)

// Event is a domain event pending publication.
type Event struct {
	TenantID      id.ID
	AggregateType string
	AggregateID   id.ID
	EventType     string
	Payload       any
}

// Publisher writes events for later delivery. Implementations must
// participate in the caller's transaction so that an event is recorded
// if and only if the state change commits.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}
