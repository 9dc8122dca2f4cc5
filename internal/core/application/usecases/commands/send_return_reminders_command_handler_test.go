package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/notifications"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReminderNotifier struct{ mock.Mock }

func (m *MockReminderNotifier) DispatchReturnReminder(
	ctx context.Context,
	rr *rma.ReturnRequest,
	recipient string,
) notifications.Result {
	args := m.Called(ctx, rr, recipient)
	return args.Get(0).(notifications.Result)
}

func buildAwaitingReturn(t *testing.T, guestEmail *string, userID *kernel.UUID) *rma.ReturnRequest {
	t.Helper()
	parent := buildDeliveredOrder(t)
	parentID := parent.ID()
	parentNumber := parent.Number()

	rr, err := rma.NewReturnRequest(
		kernel.NewUUID(), rma.GenerateNumber(time.Now().UTC()),
		&parentID, &parentNumber,
		userID, guestEmail, strPtr("delivered"),
		buildReturnItems(t), time.Now().UTC().Add(-72*time.Hour),
	)
	require.NoError(t, err)

	actor := commands.SystemActor
	_, err = rr.Transition(rma.AwaitingShipment, &actor, nil, rr.CreatedAt())
	require.NoError(t, err)
	return rr
}

func TestSendReturnRemindersCommandHandler_Handle_SendsAndMarks(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSendReturnRemindersCommand(48 * time.Hour)
	require.NoError(t, err)

	rr := buildAwaitingReturn(t, strPtr("asha@example.com"), nil)

	listRepo := new(MockReturnRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("ReturnRepository").Return(listRepo).Once(),
		listRepo.On("GetAllAwaitingShipmentBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*rma.ReturnRequest{rr}, nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	markRepo := new(MockReturnRepository)
	markUoW := new(MockUoW)
	mock.InOrder(
		markUoW.On("Begin", ctx).Return(nil).Once(),
		markUoW.On("ReturnRepository").Return(markRepo).Once(),
		markRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		markUoW.On("Commit", ctx).Return(nil).Once(),
		markUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(markUoW).Once()

	notifier := new(MockReminderNotifier)
	notifier.On("DispatchReturnReminder", ctx, rr, "asha@example.com").
		Return(notifications.Result{Success: true}).Once()

	handler := commands.NewSendReturnRemindersCommandHandler(factory, notifier, discardLogger())
	sent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.NotNil(t, rr.ReminderSentAt())
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSendReturnRemindersCommandHandler_Handle_FallsBackToOrderEmail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSendReturnRemindersCommand(48 * time.Hour)
	require.NoError(t, err)

	userID := kernel.NewUUID()
	rr := buildAwaitingReturn(t, nil, &userID)
	parent := buildDeliveredOrder(t)

	listRepo := new(MockReturnRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("ReturnRepository").Return(listRepo).Once(),
		listRepo.On("GetAllAwaitingShipmentBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*rma.ReturnRequest{rr}, nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	lookupRepo := new(MockOrderRepository)
	lookupUoW := new(MockUoW)
	mock.InOrder(
		lookupUoW.On("Begin", ctx).Return(nil).Once(),
		lookupUoW.On("OrderRepository").Return(lookupRepo).Once(),
		lookupRepo.On("Get", ctx, *rr.OrderID()).Return(parent, nil).Once(),
		lookupUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	markRepo := new(MockReturnRepository)
	markUoW := new(MockUoW)
	mock.InOrder(
		markUoW.On("Begin", ctx).Return(nil).Once(),
		markUoW.On("ReturnRepository").Return(markRepo).Once(),
		markRepo.On("Update", ctx, mock.AnythingOfType("*rma.ReturnRequest")).Return(nil).Once(),
		markUoW.On("Commit", ctx).Return(nil).Once(),
		markUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(lookupUoW).Once()
	factory.On("Create").Return(markUoW).Once()

	notifier := new(MockReminderNotifier)
	notifier.On("DispatchReturnReminder", ctx, rr, parent.Email()).
		Return(notifications.Result{Success: true}).Once()

	handler := commands.NewSendReturnRemindersCommandHandler(factory, notifier, discardLogger())
	sent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notifier.AssertExpectations(t)
}

func TestSendReturnRemindersCommandHandler_Handle_SendFailureSkipsMark(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSendReturnRemindersCommand(48 * time.Hour)
	require.NoError(t, err)

	rr := buildAwaitingReturn(t, strPtr("asha@example.com"), nil)

	listRepo := new(MockReturnRepository)
	listUoW := new(MockUoW)
	mock.InOrder(
		listUoW.On("Begin", ctx).Return(nil).Once(),
		listUoW.On("ReturnRepository").Return(listRepo).Once(),
		listRepo.On("GetAllAwaitingShipmentBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*rma.ReturnRequest{rr}, nil).Once(),
		listUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUoW).Once()

	notifier := new(MockReminderNotifier)
	notifier.On("DispatchReturnReminder", ctx, rr, "asha@example.com").
		Return(notifications.Result{
			Success: false,
			Err:     errs.NewDispatchError("asha@example.com", errors.New("smtp: connection refused")),
		}).Once()

	handler := commands.NewSendReturnRemindersCommandHandler(factory, notifier, discardLogger())
	sent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, sent)
	// The aggregate stays unmarked so the next sweep retries.
	assert.Nil(t, rr.ReminderSentAt())
	factory.AssertNumberOfCalls(t, "Create", 1)
}
