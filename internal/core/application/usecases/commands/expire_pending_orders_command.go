package commands

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
		"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
	)
)

// ExpirePendingOrdersCommand requests cancellation of orders that stayed
// pending past the payment window.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a validated expiration sweep command.
func NewExpirePendingOrdersCommand(olderThan time.Duration) (ExpirePendingOrdersCommand, error) {
	if olderThan <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("olderThan",
			fmt.Errorf("%s is not greater than 0", olderThan))
	}

	return ExpirePendingOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// OlderThan returns the age a pending order must exceed to be expired.
func (c ExpirePendingOrdersCommand) OlderThan() time.Duration { return c.olderThan }
