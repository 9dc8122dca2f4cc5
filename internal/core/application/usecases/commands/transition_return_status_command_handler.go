package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
)

// CascadePolicy controls how return resolutions propagate to the parent order.
// A refunded return always moves the parent order to refunded; mirroring of
// rejected/completed resolutions as order ledger annotations is opt-in.
type CascadePolicy struct {
	MirrorResolutions bool
}

// TransitionReturnStatusResult reports the outcome of a return transition.
// Warning carries a cascade failure message when the return transition itself
// committed fine.
type TransitionReturnStatusResult struct {
	Return       *rma.ReturnRequest
	HistoryEntry *ledger.Entry
	Warning      string
	NoOp         bool
}

// TransitionReturnStatusCommandHandler applies status transitions to return
// requests and cascades resolutions onto the parent order.
//
// The cascade runs in its own transaction after the return transition has
// committed, and it is best-effort: a parent order that cannot take the
// cascade (already refunded, modified concurrently, deleted) produces a
// warning on the result, never an error. The recorded return transition is
// the source of truth either way.
type TransitionReturnStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     CascadePolicy
	logger     *slog.Logger
}

// NewTransitionReturnStatusCommandHandler creates a handler for return status transitions.
func NewTransitionReturnStatusCommandHandler(
	uowFactory UoWFactory,
	policy CascadePolicy,
	logger *slog.Logger,
) TransitionReturnStatusCommandHandler {
	return TransitionReturnStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger.With("component", "return_transition"),
	}
}

// Handle processes the return transition command.
func (h TransitionReturnStatusCommandHandler) Handle(
	ctx context.Context,
	command TransitionReturnStatusCommand,
) (TransitionReturnStatusResult, error) {
	if err := command.Validate(); err != nil {
		return TransitionReturnStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionReturnStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	returnsRepo := uow.ReturnRepository()

	aggregate, err := returnsRepo.Get(ctx, command.ReturnID())
	if err != nil {
		return TransitionReturnStatusResult{}, err
	}

	if aggregate.Status() == command.Target() {
		return TransitionReturnStatusResult{Return: aggregate, NoOp: true}, nil
	}

	entry, err := aggregate.Transition(command.Target(), command.Actor(), command.Note(), time.Now().UTC())
	if err != nil {
		return TransitionReturnStatusResult{}, err
	}

	if err = returnsRepo.Update(ctx, aggregate); err != nil {
		return TransitionReturnStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionReturnStatusResult{}, err
	}

	result := TransitionReturnStatusResult{Return: aggregate, HistoryEntry: &entry}
	result.Warning = h.cascade(ctx, aggregate, command.Target())

	return result, nil
}

// cascade propagates the resolution onto the parent order in a fresh
// transaction. Returns a warning message on failure, empty on success or when
// nothing needs to cascade.
func (h TransitionReturnStatusCommandHandler) cascade(
	ctx context.Context,
	aggregate *rma.ReturnRequest,
	target rma.Status,
) string {
	if aggregate.OrderID() == nil {
		return ""
	}

	switch target {
	case rma.Refunded:
		return h.warned(aggregate, target,
			h.refundParentOrder(ctx, *aggregate.OrderID()))
	case rma.Rejected, rma.Completed:
		if !h.policy.MirrorResolutions {
			return ""
		}
		return h.warned(aggregate, target,
			h.annotateParentOrder(ctx, *aggregate.OrderID(), aggregate.Number(), target))
	default:
		return ""
	}
}

func (h TransitionReturnStatusCommandHandler) warned(
	aggregate *rma.ReturnRequest,
	target rma.Status,
	err error,
) string {
	if err == nil {
		return ""
	}

	h.logger.Warn("cascade to parent order failed",
		"return", aggregate.Number().String(),
		"status", target.String(),
		"error", err)
	return fmt.Sprintf("return %s recorded, but the parent order was not updated: %s",
		aggregate.Number(), err)
}

// refundParentOrder moves the parent order to refunded as a system transition.
func (h TransitionReturnStatusCommandHandler) refundParentOrder(
	ctx context.Context,
	orderID kernel.UUID,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	parent, err := ordersRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	actor := SystemActor
	reason := "return_refunded"
	if _, err = parent.Transition(order.Refunded, &actor, &reason, time.Now().UTC()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, parent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// annotateParentOrder appends a note-only ledger entry to the parent order
// recording the return resolution.
func (h TransitionReturnStatusCommandHandler) annotateParentOrder(
	ctx context.Context,
	orderID kernel.UUID,
	returnNumber rma.Number,
	target rma.Status,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	parent, err := ordersRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	actor := SystemActor
	note := fmt.Sprintf("return %s %s", returnNumber, target)
	if _, err = parent.Annotate(&actor, &note, time.Now().UTC()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, parent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
