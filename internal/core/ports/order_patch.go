package ports

import (
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderPatch names the fields of an order an update may change. A nil field
// is left untouched. Id, customer and items are never patched.
type OrderPatch struct {
	ID               kernel.OrderID
	Status           *order.Status
	Quotes           []order.Quote
	CarrierBooked    *carrier.Code
	CarrierPricePaid *kernel.Cents
}

// QuotePatch carries the status and quotes of a freshly quoted order.
func QuotePatch(o *order.Order) OrderPatch {
	status := o.Status()
	return OrderPatch{ID: o.ID(), Status: &status, Quotes: o.Quotes()}
}

// BookingPatch carries the status and booking fields of a booked order.
func BookingPatch(o *order.Order) OrderPatch {
	status := o.Status()
	patch := OrderPatch{ID: o.ID(), Status: &status}
	if code, ok := o.CarrierBooked(); ok {
		patch.CarrierBooked = &code
	}
	if paid, ok := o.CarrierPricePaid(); ok {
		patch.CarrierPricePaid = &paid
	}
	return patch
}

// StatusPatch carries only the status of o.
func StatusPatch(o *order.Order) OrderPatch {
	status := o.Status()
	return OrderPatch{ID: o.ID(), Status: &status}
}

// ApplyTo merges the patch into current and re-checks every order invariant
// through order.RestoreOrder. current is not modified.
func (p OrderPatch) ApplyTo(current *order.Order) (*order.Order, error) {
	status := current.Status()
	if p.Status != nil {
		status = *p.Status
	}

	quotes := current.Quotes()
	if p.Quotes != nil {
		quotes = p.Quotes
	}

	var booked *carrier.Code
	if code, ok := current.CarrierBooked(); ok {
		booked = &code
	}
	if p.CarrierBooked != nil {
		booked = p.CarrierBooked
	}

	var paid *kernel.Cents
	if cents, ok := current.CarrierPricePaid(); ok {
		paid = &cents
	}
	if p.CarrierPricePaid != nil {
		paid = p.CarrierPricePaid
	}

	return order.RestoreOrder(current.ID(), current.Customer(), current.Items(), status, quotes, booked, paid)
}
