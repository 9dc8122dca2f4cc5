package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildReturnInStatus(t *testing.T, parent *order.Order, statuses ...rma.Status) *rma.ReturnRequest {
	t.Helper()

	var (
		orderID     *kernel.UUID
		orderNumber *string
	)
	if parent != nil {
		id := parent.ID()
		number := parent.Number()
		orderID, orderNumber = &id, &number
	}

	rr, err := rma.NewReturnRequest(
		kernel.NewUUID(), rma.GenerateNumber(time.Now().UTC()),
		orderID, orderNumber,
		nil, strPtr("asha@example.com"), nil,
		buildReturnItems(t), time.Now().UTC(),
	)
	require.NoError(t, err)

	actor := commands.SystemActor
	for _, status := range statuses {
		_, err = rr.Transition(status, &actor, nil, rr.CreatedAt())
		require.NoError(t, err)
	}
	return rr
}

func TestNewTransitionReturnStatusCommand(t *testing.T) {
	t.Run("should reject unknown target status", func(t *testing.T) {
		_, err := commands.NewTransitionReturnStatusCommand(kernel.NewUUID(), "vaporized", nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should create command with valid parameters", func(t *testing.T) {
		returnID := kernel.NewUUID()
		cmd, err := commands.NewTransitionReturnStatusCommand(returnID, "awaiting_shipment",
			strPtr("admin-1"), strPtr("intake approved"))

		require.NoError(t, err)
		assert.Equal(t, returnID, cmd.ReturnID())
		assert.Equal(t, rma.AwaitingShipment, cmd.Target())
		assert.NoError(t, cmd.Validate())
	})
}

func TestTransitionReturnStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	rr := buildReturnInStatus(t, nil)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "awaiting_shipment",
		strPtr("admin-1"), nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.NoOp)
	assert.Empty(t, result.Warning)
	assert.Equal(t, rma.AwaitingShipment, result.Return.Status())
	require.NotNil(t, result.HistoryEntry)
	assert.Equal(t, "submitted", *result.HistoryEntry.From)
	assert.Equal(t, "awaiting_shipment", result.HistoryEntry.To)
	assert.Equal(t, result.Return.Status().String(), result.Return.History().CurrentStatus())
	factory.AssertNumberOfCalls(t, "Create", 1)
	returnRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionReturnStatusCommandHandler_Handle_NoOp(t *testing.T) {
	ctx := t.Context()
	rr := buildReturnInStatus(t, nil)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "submitted", nil, nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.NoOp)
	assert.Nil(t, result.HistoryEntry)
	assert.Len(t, result.Return.History(), 1)
	returnRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestTransitionReturnStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	rr := buildReturnInStatus(t, nil)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "refunded", nil, nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "submitted")
	assert.Contains(t, err.Error(), "refunded")
	assert.Equal(t, rma.Submitted, rr.Status())
	returnRepo.AssertNotCalled(t, "Update")
}

func TestTransitionReturnStatusCommandHandler_Handle_RefundCascadesToOrder(t *testing.T) {
	ctx := t.Context()
	parent := buildDeliveredOrder(t)
	rr := buildReturnInStatus(t, parent,
		rma.AwaitingShipment, rma.Received, rma.Inspecting, rma.Approved)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "refunded", strPtr("admin-1"), nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	returnUoW := new(MockUoW)
	mock.InOrder(
		returnUoW.On("Begin", ctx).Return(nil).Once(),
		returnUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		returnUoW.On("Commit", ctx).Return(nil).Once(),
		returnUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	orderUoW := new(MockUoW)
	mock.InOrder(
		orderUoW.On("Begin", ctx).Return(nil).Once(),
		orderUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, parent.ID()).Return(parent, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderUoW.On("Commit", ctx).Return(nil).Once(),
		orderUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(returnUoW).Once()
	factory.On("Create").Return(orderUoW).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, rma.Refunded, result.Return.Status())
	assert.Equal(t, order.Refunded, parent.Status())

	history := parent.History()
	last := history[len(history)-1]
	assert.Equal(t, "refunded", last.To)
	assert.Equal(t, commands.SystemActor, *last.Actor)
	assert.Equal(t, "return_refunded", *last.Reason)

	factory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestTransitionReturnStatusCommandHandler_Handle_CascadeFailureIsWarning(t *testing.T) {
	ctx := t.Context()
	parent := buildDeliveredOrder(t)
	actor := commands.SystemActor
	// Another return already refunded the order; the cascade edge is gone.
	_, err := parent.Transition(order.Refunded, &actor, nil, parent.CreatedAt())
	require.NoError(t, err)

	rr := buildReturnInStatus(t, parent,
		rma.AwaitingShipment, rma.Received, rma.Inspecting, rma.Approved)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "refunded", nil, nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	returnUoW := new(MockUoW)
	mock.InOrder(
		returnUoW.On("Begin", ctx).Return(nil).Once(),
		returnUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		returnUoW.On("Commit", ctx).Return(nil).Once(),
		returnUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	orderUoW := new(MockUoW)
	mock.InOrder(
		orderUoW.On("Begin", ctx).Return(nil).Once(),
		orderUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, parent.ID()).Return(parent, nil).Once(),
		orderUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(returnUoW).Once()
	factory.On("Create").Return(orderUoW).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	// The return transition stands; the failed cascade is only a warning.
	require.NoError(t, err)
	assert.Equal(t, rma.Refunded, result.Return.Status())
	assert.Contains(t, result.Warning, "parent order was not updated")
	orderRepo.AssertNotCalled(t, "Update")
	orderUoW.AssertNotCalled(t, "Commit")
}

func TestTransitionReturnStatusCommandHandler_Handle_MirrorsRejection(t *testing.T) {
	ctx := t.Context()
	parent := buildDeliveredOrder(t)
	rr := buildReturnInStatus(t, parent, rma.AwaitingShipment, rma.Received, rma.Inspecting)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "rejected",
		strPtr("admin-1"), strPtr("wear and tear, not a defect"))
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	returnUoW := new(MockUoW)
	mock.InOrder(
		returnUoW.On("Begin", ctx).Return(nil).Once(),
		returnUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		returnUoW.On("Commit", ctx).Return(nil).Once(),
		returnUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	orderRepo := new(MockOrderRepository)
	orderUoW := new(MockUoW)
	mock.InOrder(
		orderUoW.On("Begin", ctx).Return(nil).Once(),
		orderUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, parent.ID()).Return(parent, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderUoW.On("Commit", ctx).Return(nil).Once(),
		orderUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(returnUoW).Once()
	factory.On("Create").Return(orderUoW).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{MirrorResolutions: true}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	// The order status did not change; the resolution is a note-only entry.
	assert.Equal(t, order.Delivered, parent.Status())

	history := parent.History()
	last := history[len(history)-1]
	assert.Equal(t, "delivered", *last.From)
	assert.Equal(t, "delivered", last.To)
	require.NotNil(t, last.Note)
	assert.Contains(t, *last.Note, rr.Number().String())
	assert.Contains(t, *last.Note, "rejected")
	assert.Equal(t, parent.Status().String(), parent.History().CurrentStatus())
}

func TestTransitionReturnStatusCommandHandler_Handle_NoMirrorWithoutPolicy(t *testing.T) {
	ctx := t.Context()
	parent := buildDeliveredOrder(t)
	rr := buildReturnInStatus(t, parent, rma.AwaitingShipment, rma.Received, rma.Inspecting)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "rejected", nil, nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	returnUoW := new(MockUoW)
	mock.InOrder(
		returnUoW.On("Begin", ctx).Return(nil).Once(),
		returnUoW.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		returnUoW.On("Commit", ctx).Return(nil).Once(),
		returnUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(returnUoW).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	// Only the return's own transaction ran.
	factory.AssertNumberOfCalls(t, "Create", 1)
	assert.Len(t, parent.History(), 6)
}

func TestTransitionReturnStatusCommandHandler_Handle_ConcurrentConflict(t *testing.T) {
	ctx := t.Context()
	rr := buildReturnInStatus(t, nil, rma.AwaitingShipment)
	cmd, err := commands.NewTransitionReturnStatusCommand(rr.ID(), "received", nil, nil)
	require.NoError(t, err)

	returnRepo := new(MockReturnRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRepository").Return(returnRepo).Once(),
		returnRepo.On("Get", ctx, rr.ID()).Return(rr, nil).Once(),
		returnRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).
			Return(errs.NewConflictError("returnID", rr.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionReturnStatusCommandHandler(
		factory, commands.CascadePolicy{}, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit")
}
