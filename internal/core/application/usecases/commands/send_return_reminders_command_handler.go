package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"
)

// SendReturnRemindersCommandHandler emails customers whose accepted returns
// were never shipped back. Each reminder is marked on the aggregate so the
// next sweep does not repeat it; the mark is written in its own transaction
// after the email went out.
type SendReturnRemindersCommandHandler struct {
	uowFactory UoWFactory
	notifier   ReminderNotifier
	logger     *slog.Logger
}

// NewSendReturnRemindersCommandHandler creates a handler for the reminder sweep.
func NewSendReturnRemindersCommandHandler(
	uowFactory UoWFactory,
	notifier ReminderNotifier,
	logger *slog.Logger,
) SendReturnRemindersCommandHandler {
	return SendReturnRemindersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "return_reminder"),
	}
}

// Handle processes the reminder sweep and returns how many reminders were sent.
// Failures on individual returns (no reachable recipient, send failure,
// concurrent modification) are logged and skipped; the sweep continues.
func (h SendReturnRemindersCommandHandler) Handle(
	ctx context.Context,
	command SendReturnRemindersCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-command.OlderThan())

	candidates, err := h.listCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, candidate := range candidates {
		recipient, err := h.resolveRecipient(ctx, candidate)
		if err != nil {
			h.logger.Warn("no reachable recipient for return",
				"return", candidate.Number().String(), "error", err)
			continue
		}

		result := h.notifier.DispatchReturnReminder(ctx, candidate, recipient)
		if !result.Success {
			h.logger.Warn("reminder email failed",
				"return", candidate.Number().String(), "error", result.Err)
			continue
		}

		if err = h.markSent(ctx, candidate); err != nil {
			h.logger.Warn("failed to record reminder",
				"return", candidate.Number().String(), "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (h SendReturnRemindersCommandHandler) listCandidates(
	ctx context.Context,
	cutoff time.Time,
) ([]*rma.ReturnRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ReturnRepository().GetAllAwaitingShipmentBefore(ctx, cutoff)
}

// resolveRecipient prefers the guest email on the return itself and falls back
// to the contact email of the parent order.
func (h SendReturnRemindersCommandHandler) resolveRecipient(
	ctx context.Context,
	candidate *rma.ReturnRequest,
) (string, error) {
	if email := candidate.GuestEmail(); email != nil && *email != "" {
		return *email, nil
	}
	if candidate.OrderID() == nil {
		return "", errs.NewValueIsRequiredError("recipient")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parent, err := uow.OrderRepository().Get(ctx, *candidate.OrderID())
	if err != nil {
		return "", err
	}

	return parent.Email(), nil
}

func (h SendReturnRemindersCommandHandler) markSent(ctx context.Context, candidate *rma.ReturnRequest) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidate.MarkReminderSent(time.Now().UTC())

	if err := uow.ReturnRepository().Update(ctx, candidate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
