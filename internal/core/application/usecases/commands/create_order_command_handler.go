package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// CreateOrderCommandHandler materializes checkouts into pending orders.
// The order number is issued inside the same transaction as the insert: the
// year-scoped counter increments atomically, so two concurrent checkouts can
// never be assigned the same number.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for checkout materialization.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkout command.
// Issues the next order number, builds the pending payment record over the
// computed total, constructs the aggregate with its initial ledger entry, and
// persists everything in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	sequence, err := uow.CounterRepository().Next(ctx, order.CounterKey(now.Year()))
	if err != nil {
		return nil, err
	}
	number := order.FormatNumber(now.Year(), sequence)

	var subtotal int64
	for _, item := range command.Items() {
		subtotal += item.LineTotal()
	}
	total := subtotal + command.ShippingFee() - command.Discount()

	payment, err := order.NewPayment(command.PaymentMethod(), total, command.Currency())
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		command.UserID(),
		command.Email(),
		command.Address(),
		command.Items(),
		command.ShippingFee(),
		command.Discount(),
		command.DiscountCode(),
		payment,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
