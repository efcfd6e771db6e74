package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCentsIsNotConstructed is returned when validating a zero-value Cents.
var ErrCentsIsNotConstructed = errs.NewValueIsRequiredError("Cents must be created via NewCents or CentsFromInt")

// Cents is a non-negative amount of money expressed in cents. The amount is an
// exact decimal: per-gram carrier rates produce fractional cents and those are
// kept as they are, never rounded.
//
// Example:
//
//	base := kernel.CentsFromInt(800)
//	weight, _ := kernel.NewCents(decimal.RequireFromString("5"))
//	total := base.Add(weight)
//	fmt.Println(total) // 805
type Cents struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewCents validates amount and wraps it. Negative amounts are rejected.
//
// Parameters:
//   - amount: the number of cents, possibly fractional
//
// Returns:
//   - Cents: the wrapped amount
//   - error: ValueIsOutOfRangeError when amount is negative
func NewCents(amount decimal.Decimal) (Cents, error) {
	if amount.IsNegative() {
		return Cents{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"cents", amount.String(), 0, "unbounded",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Cents{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// CentsFromInt builds Cents from a whole number of cents. Negative values are
// clamped to zero.
func CentsFromInt(amount int64) Cents {
	if amount < 0 {
		amount = 0
	}
	return Cents{amount: decimal.NewFromInt(amount), guard: guard.NewConstructorGuard()}
}

// Decimal returns the underlying exact amount.
func (c Cents) Decimal() decimal.Decimal {
	return c.amount
}

// Add returns the sum of two amounts.
func (c Cents) Add(other Cents) Cents {
	return Cents{amount: c.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// IsEqual compares amounts numerically, so 805 and 805.00 are equal.
func (c Cents) IsEqual(other Cents) bool {
	return c.amount.Equal(other.amount)
}

// String renders the amount without trailing zeros ("805", "1052.5").
func (c Cents) String() string {
	return c.amount.String()
}

func (c Cents) Validate() error {
	return c.guard.Validate(ErrCentsIsNotConstructed)
}
