package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/notifications"
)

// TransitionOrderStatusResult reports the outcome of a transition.
// NoOp is set when the order already was in the target status; nothing was
// written and no email was sent. Warning carries a notification failure
// message when the transition itself committed fine.
type TransitionOrderStatusResult struct {
	Order        *order.Order
	HistoryEntry *ledger.Entry
	Message      *notifications.Message
	Warning      string
	NoOp         bool
}

// TransitionOrderStatusCommandHandler applies status transitions to orders.
// The write path is: load the aggregate, validate the edge against the state
// machine, persist with a conditional update predicated on the loaded status,
// commit. Email dispatch happens strictly after commit so a send failure can
// never unwind a recorded transition.
//
// Example:
//
//	handler := NewTransitionOrderStatusCommandHandler(uowFactory, dispatcher)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // 404
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // 400, message names both states
//	case errors.Is(err, errs.ErrConflict):
//	    // 409, a concurrent transition won; reload and retry
//	case err != nil:
//	    // 500
//	default:
//	    if result.Warning != "" {
//	        // transition recorded, email failed
//	    }
//	}
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   StatusNotifier
}

// NewTransitionOrderStatusCommandHandler creates a handler for order status transitions.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier StatusNotifier,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
// A request for the status the order already has is a no-op: the unchanged
// order is returned, nothing is appended to the ledger, no email goes out.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command TransitionOrderStatusCommand,
) (TransitionOrderStatusResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if aggregate.Status() == command.Target() {
		return TransitionOrderStatusResult{Order: aggregate, NoOp: true}, nil
	}

	entry, err := aggregate.Transition(command.Target(), command.Actor(), command.Reason(), time.Now().UTC())
	if err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	result := TransitionOrderStatusResult{Order: aggregate, HistoryEntry: &entry}

	if command.SendEmail() {
		if command.AwaitEmail() {
			dispatch := h.notifier.DispatchOrderStatus(ctx, aggregate, command.Target())
			result.Message = &dispatch.Message
			if !dispatch.Success {
				result.Warning = dispatch.Err.Error()
			}
		} else {
			h.notifier.DispatchOrderStatusAsync(aggregate, command.Target())
		}
	}

	return result, nil
}
