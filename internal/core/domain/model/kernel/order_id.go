package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID")

// OrderID identifies an order. Order ids are chosen by the caller that creates
// the order, so the value is an opaque non-blank string rather than a UUID.
//
// Example:
//
//	id, err := kernel.NewOrderID("1001")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id) // 1001
type OrderID struct {
	value string
}

// NewOrderID builds an OrderID from its string form. Blank values are rejected.
func NewOrderID(value string) (OrderID, error) {
	if strings.TrimSpace(value) == "" {
		return OrderID{}, errs.NewValueIsRequiredErrorWithCause("orderId", fmt.Errorf("%q is blank", value))
	}
	return OrderID{value: value}, nil
}

// MustOrderID is NewOrderID for literals known to be valid. It panics otherwise.
func MustOrderID(value string) OrderID {
	id, err := NewOrderID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate returns ErrOrderIDIsNotConstructed for the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
