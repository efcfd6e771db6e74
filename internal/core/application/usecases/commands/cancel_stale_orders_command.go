package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// CancelStaleOrdersCommand asks to cancel every open order created before a
// cutoff. The caller owns the clock and computes the cutoff.
type CancelStaleOrdersCommand struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewCancelStaleOrdersCommand(cutoff time.Time) (CancelStaleOrdersCommand, error) {
	if cutoff.IsZero() {
		return CancelStaleOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	return CancelStaleOrdersCommand{cutoff: cutoff, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

func (c CancelStaleOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}
