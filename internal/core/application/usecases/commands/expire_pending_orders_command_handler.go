package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// ExpirePendingOrdersCommandHandler cancels orders whose payment never
// arrived. The candidate list is read in one transaction; each cancellation
// then runs in its own, so one contested order cannot abort the whole sweep.
// A conflict means a payment callback confirmed the order between read and
// write, which is exactly the race the conditional update exists for; those
// orders are skipped.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewExpirePendingOrdersCommandHandler creates a handler for the expiration sweep.
func NewExpirePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "pending_order_expiration"),
	}
}

// Handle processes the expiration sweep and returns how many orders were cancelled.
func (h ExpirePendingOrdersCommandHandler) Handle(
	ctx context.Context,
	command ExpirePendingOrdersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-command.OlderThan())

	candidates, err := h.listCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, candidate := range candidates {
		if err = h.expire(ctx, candidate); err != nil {
			if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) {
				h.logger.Info("skipping contested order",
					"order", candidate.Number(), "error", err)
				continue
			}
			return cancelled, err
		}
		cancelled++
	}

	return cancelled, nil
}

func (h ExpirePendingOrdersCommandHandler) listCandidates(
	ctx context.Context,
	cutoff time.Time,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllPendingCreatedBefore(ctx, cutoff)
}

func (h ExpirePendingOrdersCommandHandler) expire(ctx context.Context, candidate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor := SystemActor
	reason := "payment_timeout"
	if _, err := candidate.Transition(order.Cancelled, &actor, &reason, time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, candidate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
