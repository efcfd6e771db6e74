package services

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrUnexpectedStatus is returned when an order carries a status the lifecycle
// has no rule for. Orders loaded through order.RestoreOrder never do.
var ErrUnexpectedStatus = errors.New("unexpected order status")

// CreateOrderInput is the order shape a caller asks to create.
type CreateOrderInput struct {
	ID       kernel.OrderID
	Customer string
	Items    []order.Item
}

// OrderLifecycle derives command outcomes from the current state of an order.
//
// Every Derive method is a pure function of its arguments. A nil current order
// means the order does not exist. A non-nil error is never a business
// rejection: rejections are outcomes, errors are faults (an invalid input that
// slipped past validation, an unknown carrier, a corrupt order).
//
// Example usage:
//
//	lifecycle := services.NewOrderLifecycle(services.NewCarrierPricer())
//	outcome, err := lifecycle.DeriveQuoteOutcome(current, []carrier.Code{carrier.UPS})
//	if err != nil {
//	    return err
//	}
//	if succeeded, ok := outcome.(services.Succeeded); ok {
//	    // persist succeeded.Order
//	}
type OrderLifecycle struct {
	pricer CarrierPricer
}

func NewOrderLifecycle(pricer CarrierPricer) OrderLifecycle {
	return OrderLifecycle{pricer: pricer}
}

// DeriveCreateOutcome decides whether input becomes a new order.
//
// Rules, in order:
//   - no items: OrderHasNoLineItems
//   - existing is not nil: OrderAlreadyExists with the stored order
//   - otherwise: Succeeded with a Received order and no quotes
func (l OrderLifecycle) DeriveCreateOutcome(input CreateOrderInput, existing *order.Order) (CreateOutcome, error) {
	if len(input.Items) == 0 {
		return OrderHasNoLineItems{}, nil
	}
	if existing != nil {
		return OrderAlreadyExists{Order: existing}, nil
	}

	created, err := order.NewOrder(input.ID, input.Customer, input.Items)
	if err != nil {
		return nil, fmt.Errorf("create order %s: %w", input.ID, err)
	}
	return Succeeded{Order: created}, nil
}

// DeriveQuoteOutcome prices the requested carriers for current.
//
// Rules:
//   - current is nil: OrderNotFound
//   - Booked: OrderAlreadyBooked
//   - Cancelled: InvalidOrderStatus{Expected: Received}
//   - any requested carrier already quoted: CarrierAlreadyQuoted with the first
//     conflicting quote; nothing is added
//   - otherwise: Succeeded, Quoted, new quotes appended in request order
//
// A carrier requested twice is priced once.
func (l OrderLifecycle) DeriveQuoteOutcome(current *order.Order, carriers []carrier.Code) (QuoteOutcome, error) {
	if current == nil {
		return OrderNotFound{}, nil
	}

	switch current.Status() {
	case order.Booked:
		return OrderAlreadyBooked{Order: current}, nil
	case order.Cancelled:
		return InvalidOrderStatus{Expected: order.Received, Actual: current.Status()}, nil
	case order.Received, order.Quoted:
		return l.quote(current, carriers)
	case order.Unknown:
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, current.Status())
}

func (l OrderLifecycle) quote(current *order.Order, carriers []carrier.Code) (QuoteOutcome, error) {
	requested := uniqueCarriers(carriers)
	if len(requested) == 0 {
		return nil, errs.NewValueIsRequiredError("carriers")
	}

	for _, existing := range current.Quotes() {
		if slices.Contains(requested, existing.Carrier()) {
			return CarrierAlreadyQuoted{Quote: existing, Order: current}, nil
		}
	}

	quotes := make([]order.Quote, 0, len(requested))
	for _, code := range requested {
		price, err := l.pricer.PriceCents(code, current.Items())
		if err != nil {
			return nil, err
		}
		q, err := order.NewQuote(code, price)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	next, err := current.WithQuotes(quotes)
	if err != nil {
		return nil, fmt.Errorf("quote order %s: %w", current.ID(), err)
	}
	return Succeeded{Order: next}, nil
}

// DeriveBookOutcome books code for current.
//
// Rules:
//   - current is nil: OrderNotFound
//   - Booked: OrderAlreadyBooked
//   - Cancelled: InvalidOrderStatus{Expected: Quoted}
//   - Received or Quoted without a quote for code: NoMatchingQuote
//   - otherwise: Succeeded, Booked, with the quoted price as the price paid
func (l OrderLifecycle) DeriveBookOutcome(current *order.Order, code carrier.Code) (BookOutcome, error) {
	if current == nil {
		return OrderNotFound{}, nil
	}

	switch current.Status() {
	case order.Booked:
		return OrderAlreadyBooked{Order: current}, nil
	case order.Cancelled:
		return InvalidOrderStatus{Expected: order.Quoted, Actual: current.Status()}, nil
	case order.Received, order.Quoted:
		if _, ok := current.QuoteFor(code); !ok {
			return NoMatchingQuote{Quotes: current.Quotes()}, nil
		}
		next, err := current.Book(code)
		if err != nil {
			return nil, fmt.Errorf("book order %s: %w", current.ID(), err)
		}
		return Succeeded{Order: next}, nil
	case order.Unknown:
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, current.Status())
}

// DeriveCancelOutcome cancels current if it is still open.
//
// Rules:
//   - current is nil: OrderNotFound
//   - Booked: OrderAlreadyBooked
//   - Cancelled: InvalidOrderStatus{Expected: Received}
//   - otherwise: Succeeded, Cancelled, quotes kept
func (l OrderLifecycle) DeriveCancelOutcome(current *order.Order) (CancelOutcome, error) {
	if current == nil {
		return OrderNotFound{}, nil
	}

	switch current.Status() {
	case order.Booked:
		return OrderAlreadyBooked{Order: current}, nil
	case order.Cancelled:
		return InvalidOrderStatus{Expected: order.Received, Actual: current.Status()}, nil
	case order.Received, order.Quoted:
		next, err := current.Cancel()
		if err != nil {
			return nil, fmt.Errorf("cancel order %s: %w", current.ID(), err)
		}
		return Succeeded{Order: next}, nil
	case order.Unknown:
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, current.Status())
}

// uniqueCarriers drops repeated codes, keeping the first occurrence.
func uniqueCarriers(carriers []carrier.Code) []carrier.Code {
	unique := make([]carrier.Code, 0, len(carriers))
	for _, code := range carriers {
		if !slices.Contains(unique, code) {
			unique = append(unique, code)
		}
	}
	return unique
}
