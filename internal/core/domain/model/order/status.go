package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> dispatched ──> shipped ──> out_for_delivery ──> delivered
//	   │            │              │            │                │                │
//	   ├─> cancelled├─> cancelled  ├─> cancelled│                │                │
//	   └─> refunded └─> refunded   └─> refunded └─> refunded ────┴─> refunded ────┘
//
// Statuses are persisted as their string values; the vocabulary is a
// compatibility surface read by admin timelines and customer tracking pages.
type Status string

const (
	// Pending is the initial status set at checkout, before payment capture.
	Pending Status = "pending"

	// Confirmed indicates payment was captured and the order is accepted.
	Confirmed Status = "confirmed"

	// Dispatched indicates the order left the warehouse.
	Dispatched Status = "dispatched"

	// Shipped indicates the order was handed to the carrier.
	Shipped Status = "shipped"

	// OutForDelivery indicates the carrier is delivering the order.
	OutForDelivery Status = "out_for_delivery"

	// Delivered indicates the order reached the customer. It is terminal for
	// the forward fulfillment path but may still move to Refunded.
	Delivered Status = "delivered"

	// Cancelled is a terminal state for orders stopped before shipment.
	Cancelled Status = "cancelled"

	// Refunded is a terminal state for orders whose payment was returned.
	Refunded Status = "refunded"
)

// getValidStatuses returns the canonical status set in lifecycle order.
func getValidStatuses() []Status {
	return []Status{
		Pending,
		Confirmed,
		Dispatched,
		Shipped,
		OutForDelivery,
		Delivered,
		Cancelled,
		Refunded,
	}
}

// getTransitions returns the allowed-edges table of the order state machine.
// Any edge not listed is rejected.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled, Refunded},
		Confirmed:      {Dispatched, Cancelled, Refunded},
		Dispatched:     {Shipped, Cancelled, Refunded},
		Shipped:        {OutForDelivery, Refunded},
		OutForDelivery: {Delivered, Refunded},
		Delivered:      {Refunded},
		Cancelled:      {},
		Refunded:       {},
	}
}

// ParseStatus converts an externally supplied string into a Status.
// Unknown values fail with a ValueIsInvalidError, never a panic.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks if the Status value is a member of the canonical set.
func (s Status) Validate() error {
	for _, valid := range getValidStatuses() {
		if s == valid {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid order status", string(s)))
}

// String returns the persisted string value of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// CanTransitionTo reports whether the edge from s to target is allowed.
// A self-edge is never a transition; callers treat it as an idempotent no-op.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status when the edge is allowed,
// or an InvalidTransitionError naming both states.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError("order", s.String(), target.String())
	}
	return target, nil
}

// AllowedTransitions returns a copy of the outgoing edges for the status.
func (s Status) AllowedTransitions() []Status {
	allowed := getTransitions()[s]
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}
