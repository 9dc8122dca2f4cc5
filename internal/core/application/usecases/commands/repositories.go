// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence, with notification side effects dispatched after commit.
package commands

import (
	"context"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/core/ports"
	"storefront/internal/notifications"
)

// SystemActor identifies transitions performed by the system itself
// (payment callbacks, expiration sweeps, return cascades).
const SystemActor = "system"

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency within one aggregate boundary.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// CounterRepoFactory provides access to the counter repository within a transaction.
	CounterRepoFactory interface {
		CounterRepository() ports.CounterRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages transactions for checkout materialization,
	// which touches the order repository and the order-number counter.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CounterRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// ReturnUoW manages transactions for return-only operations.
	ReturnUoW interface {
		TxManager
		ReturnRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// UoW manages transactions that may touch both return and order aggregates.
	// The return transition and its cascade onto the parent order each run in a
	// SEPARATE UoW instance: the cascade is best-effort and must be able to fail
	// without rolling back the return transition.
	UoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
	}

	// UoWFactory creates new full unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// StatusNotifier dispatches order status email. Implemented by
// notifications.Dispatcher; mocked in handler tests.
type StatusNotifier interface {
	DispatchOrderStatus(ctx context.Context, o *order.Order, target order.Status) notifications.Result
	DispatchOrderStatusAsync(o *order.Order, target order.Status)
}

// ReminderNotifier dispatches return shipment reminder email.
type ReminderNotifier interface {
	DispatchReturnReminder(ctx context.Context, rr *rma.ReturnRequest, recipient string) notifications.Result
}
