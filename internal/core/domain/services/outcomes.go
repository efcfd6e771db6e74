package services

import (
	"fulfillment/internal/core/domain/model/order"
)

// OutcomeTag is the stable wire name of an outcome. Tags are part of the
// external contract and must not be renamed.
type OutcomeTag string

const (
	TagSuccess              OutcomeTag = "SUCCESS"
	TagOrderNotFound        OutcomeTag = "ORDER_NOT_FOUND"
	TagOrderAlreadyExists   OutcomeTag = "ORDER_ALREADY_EXISTS"
	TagOrderHasNoLineItems  OutcomeTag = "ORDER_HAS_NO_LINE_ITEMS"
	TagInvalidOrderStatus   OutcomeTag = "INVALID_ORDER_STATUS"
	TagOrderAlreadyBooked   OutcomeTag = "ORDER_ALREADY_BOOKED"
	TagCarrierAlreadyQuoted OutcomeTag = "CARRIER_ALREADY_QUOTED"
	TagNoMatchingQuote      OutcomeTag = "NO_MATCHING_QUOTE"
)

// Outcome is implemented by every outcome variant.
type Outcome interface {
	Tag() OutcomeTag
}

// CreateOutcome is the closed set of results of creating an order:
// Succeeded, OrderAlreadyExists, OrderHasNoLineItems.
type CreateOutcome interface {
	Outcome
	createOutcome()
}

// QuoteOutcome is the closed set of results of quoting an order:
// Succeeded, OrderNotFound, OrderAlreadyBooked, InvalidOrderStatus,
// CarrierAlreadyQuoted.
type QuoteOutcome interface {
	Outcome
	quoteOutcome()
}

// BookOutcome is the closed set of results of booking a carrier:
// Succeeded, OrderNotFound, OrderAlreadyBooked, InvalidOrderStatus,
// NoMatchingQuote.
type BookOutcome interface {
	Outcome
	bookOutcome()
}

// CancelOutcome is the closed set of results of cancelling an order:
// Succeeded, OrderNotFound, OrderAlreadyBooked, InvalidOrderStatus.
type CancelOutcome interface {
	Outcome
	cancelOutcome()
}

// Succeeded carries the new state of the order. It is the only outcome after
// which the caller writes to storage.
type Succeeded struct {
	Order *order.Order
}

func (Succeeded) Tag() OutcomeTag { return TagSuccess }
func (Succeeded) createOutcome()  {}
func (Succeeded) quoteOutcome()   {}
func (Succeeded) bookOutcome()    {}
func (Succeeded) cancelOutcome()  {}

// OrderAlreadyExists carries the stored order that holds the requested id.
type OrderAlreadyExists struct {
	Order *order.Order
}

func (OrderAlreadyExists) Tag() OutcomeTag { return TagOrderAlreadyExists }
func (OrderAlreadyExists) createOutcome()  {}

type OrderHasNoLineItems struct{}

func (OrderHasNoLineItems) Tag() OutcomeTag { return TagOrderHasNoLineItems }
func (OrderHasNoLineItems) createOutcome()  {}

type OrderNotFound struct{}

func (OrderNotFound) Tag() OutcomeTag { return TagOrderNotFound }
func (OrderNotFound) quoteOutcome()   {}
func (OrderNotFound) bookOutcome()    {}
func (OrderNotFound) cancelOutcome()  {}

// OrderAlreadyBooked carries the booked order, unchanged.
type OrderAlreadyBooked struct {
	Order *order.Order
}

func (OrderAlreadyBooked) Tag() OutcomeTag { return TagOrderAlreadyBooked }
func (OrderAlreadyBooked) quoteOutcome()   {}
func (OrderAlreadyBooked) bookOutcome()    {}
func (OrderAlreadyBooked) cancelOutcome()  {}

// InvalidOrderStatus reports the status the command needed and the one found.
type InvalidOrderStatus struct {
	Expected order.Status
	Actual   order.Status
}

func (InvalidOrderStatus) Tag() OutcomeTag { return TagInvalidOrderStatus }
func (InvalidOrderStatus) quoteOutcome()   {}
func (InvalidOrderStatus) bookOutcome()    {}
func (InvalidOrderStatus) cancelOutcome()  {}

// CarrierAlreadyQuoted carries the first existing quote that conflicts with the
// request, together with the unchanged order.
type CarrierAlreadyQuoted struct {
	Quote order.Quote
	Order *order.Order
}

func (CarrierAlreadyQuoted) Tag() OutcomeTag { return TagCarrierAlreadyQuoted }
func (CarrierAlreadyQuoted) quoteOutcome()   {}

// NoMatchingQuote carries the quotes the order does hold.
type NoMatchingQuote struct {
	Quotes []order.Quote
}

func (NoMatchingQuote) Tag() OutcomeTag { return TagNoMatchingQuote }
func (NoMatchingQuote) bookOutcome()    {}
