package rma

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/pkg/errs"
)

var (
	// ErrReturnRequestIsNotConstructed is returned when a ReturnRequest instance
	// was not created through NewReturnRequest or RestoreReturnRequest.
	ErrReturnRequestIsNotConstructed = errors.New(
		"ReturnRequest must be created via NewReturnRequest or RestoreReturnRequest")
)

// ReturnRequest represents a customer return/exchange case linked to an order.
// It is the aggregate root for the RMA lifecycle and owns the same kind of
// append-only status ledger as the order aggregate.
//
// The parent order reference may be nil: guest submissions with partial data
// are a tolerated degraded state. Whatever order status was observed at
// creation time is recorded for audit.
type ReturnRequest struct {
	id     kernel.UUID
	number Number

	// orderID and orderNumber reference the originating order; both may be nil
	// when the lookup failed at submission time.
	orderID     *kernel.UUID
	orderNumber *string

	// Requester: a registered user id or a guest email, at least one present.
	userID     *kernel.UUID
	guestEmail *string

	// orderStatusObserved is the parent order status seen at creation, nil when
	// the order could not be resolved.
	orderStatusObserved *string

	items []ReturnItem

	status  Status
	history ledger.History

	createdAt time.Time

	// reminderSentAt records the shipment reminder email, nil until sent.
	reminderSentAt *time.Time

	// loadedStatus is the status observed at load time; repositories use it as
	// the compare-and-swap predicate on update.
	loadedStatus Status

	isConstructed bool
}

// NewReturnRequest creates a submitted return request with its first ledger
// entry (nil → submitted). At least one of userID and guestEmail must identify
// the requester.
func NewReturnRequest(
	id kernel.UUID,
	number Number,
	orderID *kernel.UUID,
	orderNumber *string,
	userID *kernel.UUID,
	guestEmail *string,
	orderStatusObserved *string,
	items []ReturnItem,
	now time.Time,
) (*ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return nil, err
		}
	}
	if userID == nil && (guestEmail == nil || *guestEmail == "") {
		return nil, errs.NewValueIsRequiredError("requester (userID or guestEmail)")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	initial, err := ledger.NewEntry(nil, Submitted.String(), nil, nil, nil, now)
	if err != nil {
		return nil, err
	}

	return &ReturnRequest{
		id:                  id,
		number:              number,
		orderID:             orderID,
		orderNumber:         orderNumber,
		userID:              userID,
		guestEmail:          guestEmail,
		orderStatusObserved: orderStatusObserved,
		items:               append([]ReturnItem(nil), items...),
		status:              Submitted,
		history:             ledger.History{}.Append(initial),
		createdAt:           now,
		isConstructed:       true,
	}, nil
}

// RestoreReturnRequest reconstructs a return request from persistence,
// re-checking the ledger invariant.
func RestoreReturnRequest(
	id kernel.UUID,
	number Number,
	orderID *kernel.UUID,
	orderNumber *string,
	userID *kernel.UUID,
	guestEmail *string,
	orderStatusObserved *string,
	items []ReturnItem,
	status Status,
	history ledger.History,
	createdAt time.Time,
	reminderSentAt *time.Time,
) (*ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := number.Validate(); err != nil {
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

	return &ReturnRequest{
		id:                  id,
		number:              number,
		orderID:             orderID,
		orderNumber:         orderNumber,
		userID:              userID,
		guestEmail:          guestEmail,
		orderStatusObserved: orderStatusObserved,
		items:               append([]ReturnItem(nil), items...),
		status:              status,
		history:             history,
		createdAt:           createdAt,
		reminderSentAt:      reminderSentAt,
		loadedStatus:        status,
		isConstructed:       true,
	}, nil
}

// Validate ensures the instance was properly constructed through a factory.
func (r *ReturnRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two return requests by their unique identifiers.
func (r *ReturnRequest) IsEqual(other *ReturnRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the internal unique identifier.
func (r *ReturnRequest) ID() kernel.UUID { return r.id }

// Number returns the human-readable return reference.
func (r *ReturnRequest) Number() Number { return r.number }

// OrderID returns the originating order id, nil when unresolved.
func (r *ReturnRequest) OrderID() *kernel.UUID { return r.orderID }

// OrderNumber returns the originating order number, nil when unknown.
func (r *ReturnRequest) OrderNumber() *string { return r.orderNumber }

// UserID returns the registered requester id, nil for guests.
func (r *ReturnRequest) UserID() *kernel.UUID { return r.userID }

// GuestEmail returns the guest requester email, nil for registered users.
func (r *ReturnRequest) GuestEmail() *string { return r.guestEmail }

// OrderStatusObserved returns the parent order status recorded at creation.
func (r *ReturnRequest) OrderStatusObserved() *string { return r.orderStatusObserved }

// Items returns a copy of the lines under return.
func (r *ReturnRequest) Items() []ReturnItem {
	return append([]ReturnItem(nil), r.items...)
}

// Status returns the current status of the return request.
func (r *ReturnRequest) Status() Status { return r.status }

// History returns a copy of the status history ledger.
func (r *ReturnRequest) History() ledger.History {
	return append(ledger.History(nil), r.history...)
}

// CreatedAt returns the submission time.
func (r *ReturnRequest) CreatedAt() time.Time { return r.createdAt }

// ReminderSentAt returns when the shipment reminder was sent, nil if never.
func (r *ReturnRequest) ReminderSentAt() *time.Time { return r.reminderSentAt }

// LoadedStatus returns the status observed when the aggregate was loaded.
func (r *ReturnRequest) LoadedStatus() Status { return r.loadedStatus }

// Transition moves the return request to the target status.
// The edge is validated against the state machine; on success the live status
// is updated and a ledger entry is appended with the given actor and note.
func (r *ReturnRequest) Transition(target Status, actor, note *string, now time.Time) (ledger.Entry, error) {
	newStatus, err := r.status.TransitionTo(target)
	if err != nil {
		return ledger.Entry{}, err
	}

	from := r.status.String()
	entry, err := ledger.NewEntry(&from, newStatus.String(), actor, nil, note, now)
	if err != nil {
		return ledger.Entry{}, err
	}

	r.status = newStatus
	r.history = r.history.Append(entry)
	return entry, nil
}

// MarkReminderSent records that the shipment reminder email went out.
func (r *ReturnRequest) MarkReminderSent(now time.Time) {
	r.reminderSentAt = &now
}
