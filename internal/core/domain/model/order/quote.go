package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrQuoteIsNotConstructed is returned when a Quote did not go through NewQuote.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// Quote is the price a carrier asked to ship an order. The price is fixed when
// the quote is created and is never recomputed.
type Quote struct {
	carrier    carrier.Code
	priceCents kernel.Cents
	guard      guard.ConstructorGuard
}

// NewQuote builds a quote for a known carrier and a constructed price.
func NewQuote(code carrier.Code, priceCents kernel.Cents) (Quote, error) {
	if err := errors.Join(code.Validate(), priceCents.Validate()); err != nil {
		return Quote{}, err
	}
	return Quote{carrier: code, priceCents: priceCents, guard: guard.NewConstructorGuard()}, nil
}

func (q Quote) Carrier() carrier.Code {
	return q.carrier
}

func (q Quote) PriceCents() kernel.Cents {
	return q.priceCents
}

// IsEqual compares carrier and price numerically.
func (q Quote) IsEqual(other Quote) bool {
	return q.carrier == other.carrier && q.priceCents.IsEqual(other.priceCents)
}

func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}
