package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Received ──> Quoted ──> Booked
//	   │  │        │ ▲
//	   │  │        └─┘ (more carriers quoted)
//	   │  └──────────────> Booked (booking straight from Received)
//	   └──> Cancelled <── Quoted
//
// Booked and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the status of a freshly created order with no quotes.
	Received

	// Quoted means at least one carrier quote is attached to the order.
	Quoted

	// Booked means a carrier was booked. No further commands change the order.
	Booked

	// Cancelled orders accept no further commands.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Received:  "RECEIVED",
		Quoted:    "QUOTED",
		Booked:    "BOOKED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:  "RECEIVED",
		Quoted:    "QUOTED",
		Booked:    "BOOKED",
		Cancelled: "CANCELLED",
	}
}

// Statuses returns the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Received, Quoted, Booked, Cancelled}
}

// ParseStatus maps the wire name of a status ("RECEIVED", ...) to a Status.
//
// Returns:
//   - the matching Status and nil
//   - Unknown and a ValueIsInvalidError for any other input, including "UNKNOWN"
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the enum are invalid. It is used on values
// read back from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It is safe to call on invalid
// values, which render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further commands.
func (s Status) IsTerminal() bool {
	return s == Booked || s == Cancelled
}

// Quote transitions the status to Quoted.
//
// Valid transitions:
//   - Received -> Quoted (first quotes)
//   - Quoted -> Quoted (quotes for more carriers)
//
// Returns:
//   - (Quoted, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Quote() (Status, error) {
	if s != Received && s != Quoted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to quote", s.String()),
		)
	}
	return Quoted, nil
}

// Book transitions the status to Booked.
//
// Both Received and Quoted are accepted. The order must still hold a quote for
// the booked carrier, which Order.Book checks.
func (s Status) Book() (Status, error) {
	if s != Received && s != Quoted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to book", s.String()),
		)
	}
	return Booked, nil
}

// Cancel transitions Received or Quoted to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Received && s != Quoted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
