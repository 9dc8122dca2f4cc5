package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rma"
)

// ReturnRepository defines the persistence contract for return request aggregates.
//
// Add surfaces a ConflictError when the RMA number collides with an existing
// row; callers regenerate the number and retry. Update uses the same
// conditional-write discipline as OrderRepository.
type ReturnRepository interface {
	// Add persists a new return request.
	// Fails with ConflictError on an RMA number collision.
	Add(ctx context.Context, aggregate *rma.ReturnRequest) error

	// Update persists changes to an existing return request.
	// Fails with ConflictError if the status changed since load,
	// or ObjectNotFoundError if the return no longer exists.
	Update(ctx context.Context, aggregate *rma.ReturnRequest) error

	// Get retrieves a return request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rma.ReturnRequest, error)

	// GetByNumber retrieves a return request by its RMA number.
	GetByNumber(ctx context.Context, number rma.Number) (*rma.ReturnRequest, error)

	// GetAllForOrder retrieves the return requests linked to an order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*rma.ReturnRequest, error)

	// GetAllAwaitingShipmentBefore retrieves returns sitting in
	// awaiting_shipment since before the cutoff with no reminder sent yet.
	GetAllAwaitingShipmentBefore(ctx context.Context, cutoff time.Time) ([]*rma.ReturnRequest, error)
}
