package rma

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of a return request.
//
// State transitions:
//
//	submitted ──> awaiting_shipment ──> received ──> inspecting ──> approved ──> refunded ──> completed
//	    │                │                  │            │              └──────────────────> completed
//	    ├─> rejected     ├─> rejected       ├─> rejected ├─> rejected        (exchange, no refund)
//	    └─> cancelled    └─> cancelled
//
// Statuses are persisted as their string values.
type Status string

const (
	// Submitted is the initial status set when the customer files the return.
	Submitted Status = "submitted"

	// AwaitingShipment indicates the return was accepted for intake and the
	// customer must ship the items back.
	AwaitingShipment Status = "awaiting_shipment"

	// Received indicates the returned items arrived at the warehouse.
	Received Status = "received"

	// Inspecting indicates the items are being checked.
	Inspecting Status = "inspecting"

	// Approved indicates inspection passed and a resolution was granted.
	Approved Status = "approved"

	// Rejected is a terminal state for returns that failed inspection or policy.
	Rejected Status = "rejected"

	// Refunded indicates the refund was issued; completion follows once the
	// case is closed out.
	Refunded Status = "refunded"

	// Completed is the terminal state for resolved returns.
	Completed Status = "completed"

	// Cancelled is a terminal state for returns withdrawn before intake.
	Cancelled Status = "cancelled"
)

// getValidStatuses returns the canonical status set in lifecycle order.
func getValidStatuses() []Status {
	return []Status{
		Submitted,
		AwaitingShipment,
		Received,
		Inspecting,
		Approved,
		Rejected,
		Refunded,
		Completed,
		Cancelled,
	}
}

// getTransitions returns the allowed-edges table of the return state machine.
// Any edge not listed is rejected.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Submitted:        {AwaitingShipment, Rejected, Cancelled},
		AwaitingShipment: {Received, Rejected, Cancelled},
		Received:         {Inspecting, Rejected},
		Inspecting:       {Approved, Rejected},
		Approved:         {Refunded, Completed},
		Refunded:         {Completed},
		Rejected:         {},
		Completed:        {},
		Cancelled:        {},
	}
}

// ParseStatus converts an externally supplied string into a Status.
// Unknown values fail with a ValueIsInvalidError.
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
		fmt.Errorf("%q is not a valid return status", string(s)))
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
		return "", errs.NewInvalidTransitionError("return", s.String(), target.String())
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
