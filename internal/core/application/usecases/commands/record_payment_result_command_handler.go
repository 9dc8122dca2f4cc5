package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// RecordPaymentResultCommandHandler applies gateway callbacks to orders.
// A successful capture stores the gateway ids and, when the order is still
// pending, confirms it as a system transition with reason payment_captured.
// A failed capture only marks the payment sub-record; the order stays pending
// until the expiration sweep cancels it or the customer retries.
type RecordPaymentResultCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   StatusNotifier
}

// NewRecordPaymentResultCommandHandler creates a handler for payment callbacks.
func NewRecordPaymentResultCommandHandler(
	uowFactory OrderUoWFactory,
	notifier StatusNotifier,
) RecordPaymentResultCommandHandler {
	return RecordPaymentResultCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment result command.
// The confirmation email goes out fire-and-forget after commit. Callbacks are
// retried by gateways, so an order already past pending records the payment
// outcome without a second status transition.
func (h RecordPaymentResultCommandHandler) Handle(
	ctx context.Context,
	command RecordPaymentResultCommand,
) (*order.Order, error) {
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

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	confirmed := false
	if command.Success() {
		aggregate.RecordPaymentSuccess(
			command.GatewayOrderID(), command.GatewayPaymentID(), command.GatewaySignature())

		if aggregate.Status() == order.Pending {
			actor := SystemActor
			reason := "payment_captured"
			if _, err = aggregate.Transition(order.Confirmed, &actor, &reason, time.Now().UTC()); err != nil {
				return nil, err
			}
			confirmed = true
		}
	} else {
		aggregate.RecordPaymentFailure()
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if confirmed {
		h.notifier.DispatchOrderStatusAsync(aggregate, order.Confirmed)
	}

	return aggregate, nil
}
