package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus represents the state of the payment sub-record.
type PaymentStatus string

const (
	// PaymentPending indicates payment was initiated but not yet settled.
	PaymentPending PaymentStatus = "pending"

	// PaymentSuccess indicates the gateway reported a successful capture.
	PaymentSuccess PaymentStatus = "success"

	// PaymentFailed indicates the gateway reported a failed or abandoned payment.
	PaymentFailed PaymentStatus = "failed"
)

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// Payment is the payment sub-record embedded in an order. Gateway ids stay nil
// until the gateway callback reports them; verification of the callback
// signature happens outside this core.
type Payment struct {
	method           string
	gatewayOrderID   *string
	gatewayPaymentID *string
	gatewaySignature *string
	amount           int64
	currency         string
	status           PaymentStatus
}

// NewPayment creates a pending payment record for the given method and amount.
func NewPayment(method string, amount int64, currency string) (Payment, error) {
	if method == "" {
		return Payment{}, errs.NewValueIsRequiredError("method")
	}
	if amount < 0 {
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	if currency == "" {
		return Payment{}, errs.NewValueIsRequiredError("currency")
	}

	return Payment{
		method:   method,
		amount:   amount,
		currency: currency,
		status:   PaymentPending,
	}, nil
}

// RestorePayment reconstructs a payment record from persistence.
func RestorePayment(
	method string,
	gatewayOrderID, gatewayPaymentID, gatewaySignature *string,
	amount int64,
	currency string,
	status PaymentStatus,
) (Payment, error) {
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}

	payment, err := NewPayment(method, amount, currency)
	if err != nil {
		return Payment{}, err
	}

	payment.gatewayOrderID = gatewayOrderID
	payment.gatewayPaymentID = gatewayPaymentID
	payment.gatewaySignature = gatewaySignature
	payment.status = status
	return payment, nil
}

// Method returns the payment method key.
func (p Payment) Method() string { return p.method }

// GatewayOrderID returns the gateway order id, nil until reported.
func (p Payment) GatewayOrderID() *string { return p.gatewayOrderID }

// GatewayPaymentID returns the gateway payment id, nil until reported.
func (p Payment) GatewayPaymentID() *string { return p.gatewayPaymentID }

// GatewaySignature returns the gateway signature, nil until reported.
func (p Payment) GatewaySignature() *string { return p.gatewaySignature }

// Amount returns the payment amount in minor units.
func (p Payment) Amount() int64 { return p.amount }

// Currency returns the payment currency code.
func (p Payment) Currency() string { return p.currency }

// Status returns the payment status.
func (p Payment) Status() PaymentStatus { return p.status }

// succeed returns a copy with the gateway ids recorded and status success.
func (p Payment) succeed(gatewayOrderID, gatewayPaymentID, gatewaySignature *string) Payment {
	p.gatewayOrderID = gatewayOrderID
	p.gatewayPaymentID = gatewayPaymentID
	p.gatewaySignature = gatewaySignature
	p.status = PaymentSuccess
	return p
}

// fail returns a copy with status failed.
func (p Payment) fail() Payment {
	p.status = PaymentFailed
	return p
}
