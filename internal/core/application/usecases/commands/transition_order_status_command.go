package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
		"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
	)
)

// TransitionOrderStatusCommand requests moving an order to a target status.
// The target is parsed at construction time so unknown status strings fail
// fast with a validation error before any datastore access.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand(orderID, "shipped",
//	    TransitionOrderStatusOptions{Actor: &adminID, SendEmail: true})
//	if err != nil {
//	    return err // unknown status value
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	target     order.Status
	actor      *string
	reason     *string
	sendEmail  bool
	awaitEmail bool

	guard guard.ConstructorGuard
}

// TransitionOrderStatusOptions carries the optional parameters of a transition.
// AwaitEmail only matters when SendEmail is set: it makes the handler wait for
// the dispatch result instead of sending fire-and-forget.
type TransitionOrderStatusOptions struct {
	Actor      *string
	Reason     *string
	SendEmail  bool
	AwaitEmail bool
}

// NewTransitionOrderStatusCommand creates a validated transition command.
// An unknown target status fails with a ValueIsInvalidError.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target string,
	opts TransitionOrderStatusOptions,
) (TransitionOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	status, err := order.ParseStatus(target)
	if err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return TransitionOrderStatusCommand{
		orderID:    orderID,
		target:     status,
		actor:      opts.Actor,
		reason:     opts.Reason,
		sendEmail:  opts.SendEmail,
		awaitEmail: opts.AwaitEmail,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order identifier.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the parsed target status.
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }

// Actor returns the acting user id, nil for system transitions.
func (c TransitionOrderStatusCommand) Actor() *string { return c.actor }

// Reason returns the optional short reason code.
func (c TransitionOrderStatusCommand) Reason() *string { return c.reason }

// SendEmail reports whether a status email should be dispatched.
func (c TransitionOrderStatusCommand) SendEmail() bool { return c.sendEmail }

// AwaitEmail reports whether the handler waits for the dispatch result.
func (c TransitionOrderStatusCommand) AwaitEmail() bool { return c.awaitEmail }
