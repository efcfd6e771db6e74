package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoItems is returned when an order is built without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredErrorWithCause("items", errors.New("order has no line items"))

	// ErrCarrierAlreadyQuoted is returned when a quote is added for a carrier the
	// order already holds a quote for.
	ErrCarrierAlreadyQuoted = errors.New("carrier already quoted")

	// ErrNoMatchingQuote is returned when booking a carrier the order holds no quote for.
	ErrNoMatchingQuote = errors.New("no matching quote")
)

// Order is the aggregate root of the fulfillment domain: a customer's sales
// order together with the carrier quotes collected for it and, once booked, the
// carrier that ships it.
//
// Order follows these invariants:
//   - Has a caller supplied identifier and at least one line item
//   - Holds at most one quote per carrier, in the order the quotes were made
//   - A Received order has no quotes, a Quoted order has at least one
//   - carrierBooked and carrierPricePaid are set together, only when Booked
//
// Orders are values: the transition methods (WithQuotes, Book, Cancel) never
// modify the receiver and return a new *Order instead.
type Order struct {
	id       kernel.OrderID
	customer string
	items    []Item
	status   Status
	quotes   []Quote

	// carrierBooked and carrierPricePaid are nil until the order is booked
	carrierBooked    *carrier.Code
	carrierPricePaid *kernel.Cents

	isConstructed bool
}

// NewOrder creates an order in Received status with no quotes.
//
// Parameters:
//   - id: caller supplied order identifier
//   - customer: customer name, must not be blank
//   - items: line items, at least one
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation errors joined together; ErrOrderHasNoItems for empty items
//
// Example:
//
//	item, _ := order.NewItem("SKU-1", decimal.NewFromInt(20), decimal.NewFromInt(100), 1)
//	o, err := order.NewOrder(kernel.MustOrderID("1"), "ACME", []order.Item{item})
func NewOrder(id kernel.OrderID, customer string, items []Item) (*Order, error) {
	o := &Order{
		status:        Received,
		quotes:        []Quote{},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from stored state, checking every invariant.
// Repositories use it when loading rows and after merging a partial update.
func RestoreOrder(
	id kernel.OrderID,
	customer string,
	items []Item,
	status Status,
	quotes []Quote,
	carrierBooked *carrier.Code,
	carrierPricePaid *kernel.Cents,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setStatus(status),
		o.setQuotes(quotes),
		o.setBooking(carrierBooked, carrierPricePaid),
	); err != nil {
		return nil, err
	}

	if err := o.checkConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) Customer() string {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Status() Status {
	return o.status
}

// Quotes returns a copy of the quotes in the order they were made.
func (o *Order) Quotes() []Quote {
	return slices.Clone(o.quotes)
}

// QuoteFor returns the quote held for code, if any.
func (o *Order) QuoteFor(code carrier.Code) (Quote, bool) {
	for _, q := range o.quotes {
		if q.Carrier() == code {
			return q, true
		}
	}
	return Quote{}, false
}

// CarrierBooked returns the booked carrier. The second result is false until
// the order is booked.
func (o *Order) CarrierBooked() (carrier.Code, bool) {
	if o.carrierBooked == nil {
		return carrier.Unknown, false
	}
	return *o.carrierBooked, true
}

// CarrierPricePaid returns the price of the booked quote, if booked.
func (o *Order) CarrierPricePaid() (kernel.Cents, bool) {
	if o.carrierPricePaid == nil {
		return kernel.Cents{}, false
	}
	return *o.carrierPricePaid, true
}

// WithQuotes returns a Quoted copy of the order with quotes appended after the
// existing ones.
//
// This method enforces the following business rules:
//   - The order must be Received or Quoted
//   - At least one quote is added
//   - No carrier ends up with two quotes
//
// Returns:
//   - *Order: the new state of the order
//   - error: a status error, or ErrCarrierAlreadyQuoted wrapped with the carrier
func (o *Order) WithQuotes(quotes []Quote) (*Order, error) {
	newStatus, err := o.status.Quote()
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errs.NewValueIsRequiredError("quotes")
	}

	next := o.clone()
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, exists := next.QuoteFor(q.Carrier()); exists {
			return nil, fmt.Errorf("%w: %s", ErrCarrierAlreadyQuoted, q.Carrier())
		}
		next.quotes = append(next.quotes, q)
	}
	next.status = newStatus

	return next, nil
}

// Book returns a Booked copy of the order with carrierBooked and
// carrierPricePaid taken from the quote held for code. Quotes are unchanged.
//
// Example:
//
//	booked, err := quoted.Book(carrier.UPS)
//	if errors.Is(err, order.ErrNoMatchingQuote) {
//	    // UPS never quoted this order
//	}
func (o *Order) Book(code carrier.Code) (*Order, error) {
	newStatus, err := o.status.Book()
	if err != nil {
		return nil, err
	}

	q, ok := o.QuoteFor(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingQuote, code)
	}

	next := o.clone()
	booked := q.Carrier()
	paid := q.PriceCents()
	next.status = newStatus
	next.carrierBooked = &booked
	next.carrierPricePaid = &paid

	return next, nil
}

// Cancel returns a Cancelled copy of the order. Quotes are kept.
func (o *Order) Cancel() (*Order, error) {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	next := o.clone()
	next.status = newStatus
	return next, nil
}

func (o *Order) clone() *Order {
	next := *o
	next.items = slices.Clone(o.items)
	next.quotes = slices.Clone(o.quotes)
	if next.quotes == nil {
		next.quotes = []Quote{}
	}
	return &next
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if strings.TrimSpace(customer) == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setQuotes(quotes []Quote) error {
	seen := make(map[carrier.Code]struct{}, len(quotes))
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.Carrier()]; dup {
			return fmt.Errorf("%w: %s", ErrCarrierAlreadyQuoted, q.Carrier())
		}
		seen[q.Carrier()] = struct{}{}
	}
	o.quotes = slices.Clone(quotes)
	if o.quotes == nil {
		o.quotes = []Quote{}
	}
	return nil
}

func (o *Order) setBooking(carrierBooked *carrier.Code, carrierPricePaid *kernel.Cents) error {
	if (carrierBooked == nil) != (carrierPricePaid == nil) {
		return errs.NewValueIsInvalidErrorWithCause("carrierBooked",
			errors.New("carrierBooked and carrierPricePaid must be set together"))
	}
	if carrierBooked == nil {
		return nil
	}
	if err := errors.Join(carrierBooked.Validate(), carrierPricePaid.Validate()); err != nil {
		return err
	}
	code, paid := *carrierBooked, *carrierPricePaid
	o.carrierBooked = &code
	o.carrierPricePaid = &paid
	return nil
}

// checkConsistency validates the rules that span several fields.
func (o *Order) checkConsistency() error {
	if o.status == Booked && o.carrierBooked == nil {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a booked carrier", o.status))
	}
	if o.status != Booked && o.carrierBooked != nil {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot have a booked carrier", o.status))
	}
	if o.status == Received && len(o.quotes) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot hold quotes", o.status))
	}
	if o.status == Quoted && len(o.quotes) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must hold at least one quote", o.status))
	}
	return nil
}
