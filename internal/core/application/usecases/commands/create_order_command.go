package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand materializes a checkout submission. It carries already
// validated value objects (address, line items) plus the pricing adjustments;
// the order number is issued by the handler from the year-scoped counter.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, "asha@example.com", address, items,
//	    CreateOrderOptions{ShippingFee: 4900, PaymentMethod: "razorpay", Currency: "INR"})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID        *kernel.UUID
	email         string
	address       order.Address
	items         []order.LineItem
	shippingFee   int64
	discount      int64
	discountCode  *string
	paymentMethod string
	currency      string

	guard guard.ConstructorGuard
}

// CreateOrderOptions carries the pricing and payment parameters of a checkout.
type CreateOrderOptions struct {
	ShippingFee   int64
	Discount      int64
	DiscountCode  *string
	PaymentMethod string
	Currency      string
}

// NewCreateOrderCommand creates a validated checkout command.
// UserID is nil for guest checkout; email and at least one item are required.
func NewCreateOrderCommand(
	userID *kernel.UUID,
	email string,
	address order.Address,
	items []order.LineItem,
	opts CreateOrderOptions,
) (CreateOrderCommand, error) {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}
	if email == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("email")
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	if opts.PaymentMethod == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("paymentMethod")
	}
	if opts.Currency == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("currency")
	}

	return CreateOrderCommand{
		userID:        userID,
		email:         email,
		address:       address,
		items:         append([]order.LineItem(nil), items...),
		shippingFee:   opts.ShippingFee,
		discount:      opts.Discount,
		discountCode:  opts.DiscountCode,
		paymentMethod: opts.PaymentMethod,
		currency:      opts.Currency,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the registered customer id, nil for guest checkout.
func (c CreateOrderCommand) UserID() *kernel.UUID { return c.userID }

// Email returns the contact email.
func (c CreateOrderCommand) Email() string { return c.email }

// Address returns the shipping destination.
func (c CreateOrderCommand) Address() order.Address { return c.address }

// Items returns a copy of the checkout lines.
func (c CreateOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}

// ShippingFee returns the shipping fee in minor units.
func (c CreateOrderCommand) ShippingFee() int64 { return c.shippingFee }

// Discount returns the discount in minor units.
func (c CreateOrderCommand) Discount() int64 { return c.discount }

// DiscountCode returns the applied discount code, nil if none.
func (c CreateOrderCommand) DiscountCode() *string { return c.discountCode }

// PaymentMethod returns the payment method key.
func (c CreateOrderCommand) PaymentMethod() string { return c.paymentMethod }

// Currency returns the payment currency code.
func (c CreateOrderCommand) Currency() string { return c.currency }
