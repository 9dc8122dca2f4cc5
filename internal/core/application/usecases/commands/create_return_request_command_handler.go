package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"
)

// rmaNumberAttempts bounds retries on RMA number collisions. Four random
// digits per day make a collision unlikely; three tries is plenty.
const rmaNumberAttempts = 3

// CreateReturnRequestCommandHandler registers return/exchange submissions.
//
// The parent order is resolved by number. A resolved order that has not been
// delivered rejects the submission; an order that cannot be resolved at all is
// tolerated, the return is recorded with nil order references for manual
// review. Each insert attempt runs in its own transaction so an RMA number
// collision can be retried with a fresh number.
type CreateReturnRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateReturnRequestCommandHandler creates a handler for return submissions.
func NewCreateReturnRequestCommandHandler(uowFactory UoWFactory) CreateReturnRequestCommandHandler {
	return CreateReturnRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return submission command.
func (h CreateReturnRequestCommandHandler) Handle(
	ctx context.Context,
	command CreateReturnRequestCommand,
) (*rma.ReturnRequest, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for range rmaNumberAttempts {
		aggregate, err := h.attempt(ctx, command)
		if errors.Is(err, errs.ErrConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return aggregate, nil
	}

	return nil, lastErr
}

// attempt runs one submission attempt in its own transaction. A ConflictError
// from Add aborts the transaction, so retries need a fresh one.
func (h CreateReturnRequestCommandHandler) attempt(
	ctx context.Context,
	command CreateReturnRequestCommand,
) (*rma.ReturnRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		orderID             *kernel.UUID
		orderNumber         *string
		orderStatusObserved *string
	)

	parent, err := uow.OrderRepository().GetByNumber(ctx, command.OrderNumber())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// Tolerated: record the submission without order references.
	case err != nil:
		return nil, err
	default:
		if parent.Status() != order.Delivered {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderNumber",
				fmt.Errorf("order %s is %s, returns require a delivered order",
					parent.Number(), parent.Status()))
		}
		id := parent.ID()
		number := parent.Number()
		status := parent.Status().String()
		orderID, orderNumber, orderStatusObserved = &id, &number, &status
	}

	now := time.Now().UTC()
	aggregate, err := rma.NewReturnRequest(
		kernel.NewUUID(),
		rma.GenerateNumber(now),
		orderID,
		orderNumber,
		command.UserID(),
		command.GuestEmail(),
		orderStatusObserved,
		command.Items(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ReturnRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
