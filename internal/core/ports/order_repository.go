package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is a conditional write: it predicates on the status the aggregate was
// loaded with and fails with a ConflictError when a concurrent transition won
// the race. This is the serialization point that keeps two simultaneous
// transitions on the same order from both appending a "last" ledger entry.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with ConflictError if the order's status changed since load,
	// or ObjectNotFoundError if the order no longer exists.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllPendingCreatedBefore retrieves orders still pending whose checkout
	// happened before the cutoff. Used by the payment-timeout expiration sweep.
	GetAllPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
