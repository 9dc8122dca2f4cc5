package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a customer order in the storefront. It is the aggregate
// root that owns the canonical status field and the append-only status history
// from checkout through fulfillment, cancellation or refund.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and order number
//   - Must have at least one line item; totals are computed, never supplied
//   - The live status always equals the To of the last history entry
//   - Status changes only through Transition, which enforces the state machine
//   - History entries are never mutated or removed after append
//
// The struct uses private fields to ensure encapsulation; repositories persist
// it through accessors and reconstruct it with RestoreOrder.
type Order struct {
	// id is the internal unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, sequential per year
	number string

	// userID is the registered owner, nil for guest checkout
	userID *kernel.UUID

	// email is the contact address used for notifications
	email string

	// address is the shipping destination snapshot
	address Address

	// items are the purchased lines with price snapshots
	items []LineItem

	subtotal     int64
	shippingFee  int64
	discount     int64
	discountCode *string
	total        int64

	// payment is the embedded payment sub-record
	payment Payment

	// status is a cached copy of the last history entry's To
	status Status

	// history is the append-only transition ledger
	history ledger.History

	// createdAt is the checkout time, used by the pending-order expiration sweep
	createdAt time.Time

	// loadedStatus is the status observed when the aggregate was read from
	// storage. Conditional updates predicate on it so two concurrent
	// transitions on the same order cannot both win.
	loadedStatus Status

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder materializes a checkout submission into a pending order.
// Subtotal and total are computed from the items, shipping fee and discount.
// The first history entry (nil → pending) is written at creation time.
func NewOrder(
	id kernel.UUID,
	number string,
	userID *kernel.UUID,
	email string,
	address Address,
	items []LineItem,
	shippingFee int64,
	discount int64,
	discountCode *string,
	payment Payment,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return nil, err
		}
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if shippingFee < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("shippingFee",
			fmt.Errorf("%d is negative", shippingFee))
	}
	if discount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%d is negative", discount))
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	total := subtotal + shippingFee - discount
	if total < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("discount %d exceeds subtotal plus shipping", discount))
	}

	initial, err := ledger.NewEntry(nil, Pending.String(), nil, nil, nil, now)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		userID:        userID,
		email:         email,
		address:       address,
		items:         append([]LineItem(nil), items...),
		subtotal:      subtotal,
		shippingFee:   shippingFee,
		discount:      discount,
		discountCode:  discountCode,
		total:         total,
		payment:       payment,
		status:        Pending,
		history:       ledger.History{}.Append(initial),
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence.
// It re-checks the ledger invariant: the live status must equal the To of the
// last history entry.
func RestoreOrder(
	id kernel.UUID,
	number string,
	userID *kernel.UUID,
	email string,
	address Address,
	items []LineItem,
	subtotal, shippingFee, discount int64,
	discountCode *string,
	total int64,
	payment Payment,
	status Status,
	history ledger.History,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if history.CurrentStatus() != status.String() {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("live status %q does not equal last history entry %q",
				status, history.CurrentStatus()))
	}

	return &Order{
		id:            id,
		number:        number,
		userID:        userID,
		email:         email,
		address:       address,
		items:         append([]LineItem(nil), items...),
		subtotal:      subtotal,
		shippingFee:   shippingFee,
		discount:      discount,
		discountCode:  discountCode,
		total:         total,
		payment:       payment,
		status:        status,
		history:       history,
		createdAt:     createdAt,
		loadedStatus:  status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-readable order number.
func (o *Order) Number() string { return o.number }

// UserID returns the registered owner's id, nil for guest orders.
func (o *Order) UserID() *kernel.UUID { return o.userID }

// Email returns the contact email.
func (o *Order) Email() string { return o.email }

// ShippingAddress returns the shipping destination snapshot.
func (o *Order) ShippingAddress() Address { return o.address }

// Items returns a copy of the order lines.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Subtotal returns the sum of the line totals in minor units.
func (o *Order) Subtotal() int64 { return o.subtotal }

// ShippingFee returns the shipping fee in minor units.
func (o *Order) ShippingFee() int64 { return o.shippingFee }

// Discount returns the applied discount in minor units.
func (o *Order) Discount() int64 { return o.discount }

// DiscountCode returns the applied discount code, nil if none.
func (o *Order) DiscountCode() *string { return o.discountCode }

// Total returns the order total in minor units.
func (o *Order) Total() int64 { return o.total }

// Payment returns the payment sub-record.
func (o *Order) Payment() Payment { return o.payment }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the status history ledger.
func (o *Order) History() ledger.History {
	return append(ledger.History(nil), o.history...)
}

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// LoadedStatus returns the status observed when the aggregate was loaded.
// Repositories use it as the compare-and-swap predicate on update.
func (o *Order) LoadedStatus() Status { return o.loadedStatus }

// Transition moves the order to the target status.
//
// The edge is validated against the state machine; a rejected edge fails with
// an InvalidTransitionError naming both states and leaves the order unchanged.
// On success the live status is updated and a ledger entry is appended with
// the given actor and reason. Callers detect the no-op case (target equals the
// current status) before calling; a self-edge here is an invalid transition.
func (o *Order) Transition(target Status, actor, reason *string, now time.Time) (ledger.Entry, error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return ledger.Entry{}, err
	}

	from := o.status.String()
	entry, err := ledger.NewEntry(&from, newStatus.String(), actor, reason, nil, now)
	if err != nil {
		return ledger.Entry{}, err
	}

	o.status = newStatus
	o.history = o.history.Append(entry)
	return entry, nil
}

// Annotate appends a note-only ledger entry without changing the status.
// The entry's From and To both equal the current status, preserving the
// invariant that the live status equals the last entry's To. Used to mirror
// return resolutions onto the parent order when policy asks for it.
func (o *Order) Annotate(actor, note *string, now time.Time) (ledger.Entry, error) {
	current := o.status.String()
	entry, err := ledger.NewEntry(&current, current, actor, nil, note, now)
	if err != nil {
		return ledger.Entry{}, err
	}

	o.history = o.history.Append(entry)
	return entry, nil
}

// RecordPaymentSuccess stores the gateway ids on the payment sub-record and
// marks it successful. The order status transition (pending → confirmed) is a
// separate step owned by the caller.
func (o *Order) RecordPaymentSuccess(gatewayOrderID, gatewayPaymentID, gatewaySignature *string) {
	o.payment = o.payment.succeed(gatewayOrderID, gatewayPaymentID, gatewaySignature)
}

// RecordPaymentFailure marks the payment sub-record failed.
func (o *Order) RecordPaymentFailure() {
	o.payment = o.payment.fail()
}
