package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rma"
	"storefront/internal/pkg/guard"
)

var (
	ErrTransitionReturnStatusCommandIsNotConstructed = errors.New(
		"TransitionReturnStatusCommand must be created via NewTransitionReturnStatusCommand constructor",
	)
)

// TransitionReturnStatusCommand requests moving a return request to a target
// status. Like its order counterpart, the target is parsed at construction
// time so unknown status strings fail before any datastore access.
type TransitionReturnStatusCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	target   rma.Status
	actor    *string
	note     *string

	guard guard.ConstructorGuard
}

// NewTransitionReturnStatusCommand creates a validated return transition command.
func NewTransitionReturnStatusCommand(
	returnID kernel.UUID,
	target string,
	actor, note *string,
) (TransitionReturnStatusCommand, error) {
	if err := returnID.Validate(); err != nil {
		return TransitionReturnStatusCommand{}, err
	}

	status, err := rma.ParseStatus(target)
	if err != nil {
		return TransitionReturnStatusCommand{}, err
	}

	return TransitionReturnStatusCommand{
		returnID: returnID,
		target:   status,
		actor:    actor,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionReturnStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionReturnStatusCommandIsNotConstructed)
}

// ReturnID returns the return request identifier.
func (c TransitionReturnStatusCommand) ReturnID() kernel.UUID { return c.returnID }

// Target returns the parsed target status.
func (c TransitionReturnStatusCommand) Target() rma.Status { return c.target }

// Actor returns the acting user id, nil for system transitions.
func (c TransitionReturnStatusCommand) Actor() *string { return c.actor }

// Note returns the optional free-text note for the ledger entry.
func (c TransitionReturnStatusCommand) Note() *string { return c.note }
