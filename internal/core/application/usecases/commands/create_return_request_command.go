package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateReturnRequestCommandIsNotConstructed = errors.New(
		"CreateReturnRequestCommand must be created via NewCreateReturnRequestCommand constructor",
	)
)

// CreateReturnRequestCommand represents a return/exchange submission.
// The requester is a registered user id or a guest email; the order is
// referenced by its human-readable number as the customer sees it.
type CreateReturnRequestCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	userID      *kernel.UUID
	guestEmail  *string
	items       []rma.ReturnItem

	guard guard.ConstructorGuard
}

// NewCreateReturnRequestCommand creates a validated return submission command.
func NewCreateReturnRequestCommand(
	orderNumber string,
	userID *kernel.UUID,
	guestEmail *string,
	items []rma.ReturnItem,
) (CreateReturnRequestCommand, error) {
	if orderNumber == "" {
		return CreateReturnRequestCommand{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return CreateReturnRequestCommand{}, err
		}
	}
	if userID == nil && (guestEmail == nil || *guestEmail == "") {
		return CreateReturnRequestCommand{}, errs.NewValueIsRequiredError("requester (userID or guestEmail)")
	}
	if len(items) == 0 {
		return CreateReturnRequestCommand{}, errs.NewValueIsRequiredError("items")
	}

	return CreateReturnRequestCommand{
		orderNumber: orderNumber,
		userID:      userID,
		guestEmail:  guestEmail,
		items:       append([]rma.ReturnItem(nil), items...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnRequestCommandIsNotConstructed)
}

// OrderNumber returns the customer-supplied order number.
func (c CreateReturnRequestCommand) OrderNumber() string { return c.orderNumber }

// UserID returns the registered requester id, nil for guests.
func (c CreateReturnRequestCommand) UserID() *kernel.UUID { return c.userID }

// GuestEmail returns the guest requester email, nil for registered users.
func (c CreateReturnRequestCommand) GuestEmail() *string { return c.guestEmail }

// Items returns a copy of the lines under return.
func (c CreateReturnRequestCommand) Items() []rma.ReturnItem {
	return append([]rma.ReturnItem(nil), c.items...)
}
