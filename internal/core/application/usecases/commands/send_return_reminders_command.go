package commands

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrSendReturnRemindersCommandIsNotConstructed = errors.New(
		"SendReturnRemindersCommand must be created via NewSendReturnRemindersCommand constructor",
	)
)

// SendReturnRemindersCommand requests reminder emails for returns that have
// been sitting in awaiting_shipment longer than the given window.
type SendReturnRemindersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewSendReturnRemindersCommand creates a validated reminder sweep command.
func NewSendReturnRemindersCommand(olderThan time.Duration) (SendReturnRemindersCommand, error) {
	if olderThan <= 0 {
		return SendReturnRemindersCommand{}, errs.NewValueIsInvalidErrorWithCause("olderThan",
			fmt.Errorf("%s is not greater than 0", olderThan))
	}

	return SendReturnRemindersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendReturnRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendReturnRemindersCommandIsNotConstructed)
}

// OlderThan returns how long a return must wait in awaiting_shipment before a
// reminder goes out.
func (c SendReturnRemindersCommand) OlderThan() time.Duration { return c.olderThan }
