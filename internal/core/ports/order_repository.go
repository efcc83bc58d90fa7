package ports

import (
	"context"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	//
	// The write is guarded by the version the aggregate was loaded with: if
	// another transaction has modified the row since, nothing is written and
	// a ConflictError is returned. Callers are expected to reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including all of its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPlacedBefore retrieves orders still in Placed status whose
	// creation time is older than the cutoff. Used by the stale order
	// cancellation job.
	GetAllPlacedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
