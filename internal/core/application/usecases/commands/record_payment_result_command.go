package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrRecordPaymentResultCommandIsNotConstructed = errors.New(
		"RecordPaymentResultCommand must be created via NewRecordPaymentResultCommand constructor",
	)
)

// RecordPaymentResultCommand carries a verified gateway callback. Signature
// verification happens at the edge; by the time this command is built the
// outcome is trusted.
type RecordPaymentResultCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	success          bool
	gatewayOrderID   *string
	gatewayPaymentID *string
	gatewaySignature *string

	guard guard.ConstructorGuard
}

// NewRecordPaymentResultCommand creates a validated payment result command.
// A successful result must carry the gateway payment id.
func NewRecordPaymentResultCommand(
	orderID kernel.UUID,
	success bool,
	gatewayOrderID, gatewayPaymentID, gatewaySignature *string,
) (RecordPaymentResultCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordPaymentResultCommand{}, err
	}
	if success && (gatewayPaymentID == nil || *gatewayPaymentID == "") {
		return RecordPaymentResultCommand{}, errs.NewValueIsRequiredError("gatewayPaymentID")
	}

	return RecordPaymentResultCommand{
		orderID:          orderID,
		success:          success,
		gatewayOrderID:   gatewayOrderID,
		gatewayPaymentID: gatewayPaymentID,
		gatewaySignature: gatewaySignature,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentResultCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentResultCommandIsNotConstructed)
}

// OrderID returns the order identifier.
func (c RecordPaymentResultCommand) OrderID() kernel.UUID { return c.orderID }

// Success reports whether the gateway captured the payment.
func (c RecordPaymentResultCommand) Success() bool { return c.success }

// GatewayOrderID returns the gateway order id.
func (c RecordPaymentResultCommand) GatewayOrderID() *string { return c.gatewayOrderID }

// GatewayPaymentID returns the gateway payment id.
func (c RecordPaymentResultCommand) GatewayPaymentID() *string { return c.gatewayPaymentID }

// GatewaySignature returns the gateway signature.
func (c RecordPaymentResultCommand) GatewaySignature() *string { return c.gatewaySignature }
