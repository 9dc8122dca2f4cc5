package notifications

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// Result reports the outcome of one dispatch attempt. Err wraps the underlying
// send failure as a DispatchError; it is advisory and never propagated as the
// failure of the transition that triggered the send.
type Result struct {
	Success bool
	Message Message
	Err     error
}

// Dispatcher renders and sends status email through an EmailSender.
type Dispatcher struct {
	sender ports.EmailSender
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given sender.
func NewDispatcher(sender ports.EmailSender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// DispatchOrderStatus renders and sends the email for an order entering the
// target status, synchronously. The returned Result carries the rendered
// message either way.
func (d *Dispatcher) DispatchOrderStatus(ctx context.Context, o *order.Order, target order.Status) Result {
	message := BuildOrderStatusMessage(o, target)
	return d.send(ctx, o.Email(), message)
}

// DispatchOrderStatusAsync sends the status email fire-and-forget. The caller
// returns before delivery completes; failures are logged, never surfaced.
func (d *Dispatcher) DispatchOrderStatusAsync(o *order.Order, target order.Status) {
	message := BuildOrderStatusMessage(o, target)
	recipient := o.Email()

	go func() {
		result := d.send(context.Background(), recipient, message)
		if !result.Success {
			d.logger.Error("async status email failed",
				"order", o.Number(), "status", target.String(), "error", result.Err)
		}
	}()
}

// DispatchReturnReminder sends the shipment reminder for a return in
// awaiting_shipment to the given recipient.
func (d *Dispatcher) DispatchReturnReminder(ctx context.Context, rr *rma.ReturnRequest, recipient string) Result {
	message := BuildReturnReminderMessage(rr)
	return d.send(ctx, recipient, message)
}

func (d *Dispatcher) send(ctx context.Context, recipient string, message Message) Result {
	if recipient == "" {
		err := errs.NewDispatchError(recipient, errs.NewValueIsRequiredError("recipient"))
		return Result{Success: false, Message: message, Err: err}
	}

	err := d.sender.Send(ctx, ports.Email{
		To:      recipient,
		Subject: message.Subject,
		HTML:    message.HTML,
		Text:    message.Text,
	})
	if err != nil {
		return Result{Success: false, Message: message, Err: errs.NewDispatchError(recipient, err)}
	}

	return Result{Success: true, Message: message}
}
