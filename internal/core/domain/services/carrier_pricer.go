package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CarrierPricer prices shipments with the fixed carrier rate table:
//
//	price = base(carrier) + Σ item.gramsPerItem * rate(carrier)
//
// Quantity does not take part in the formula. The result is exact and may hold
// fractional cents.
type CarrierPricer struct{}

func NewCarrierPricer() CarrierPricer {
	return CarrierPricer{}
}

// PriceCents returns the price of shipping items with code.
//
// Returns:
//   - kernel.Cents: the price, identical for identical inputs
//   - error: carrier.ErrUnknownCarrier for a code outside the rate table
//
// Example:
//
//	price, _ := pricer.PriceCents(carrier.UPS, items) // 800 + 100g * 0.05 = 805
func (CarrierPricer) PriceCents(code carrier.Code, items []order.Item) (kernel.Cents, error) {
	rate, err := carrier.RateFor(code)
	if err != nil {
		return kernel.Cents{}, err
	}

	grams := decimal.Zero
	for _, item := range items {
		grams = grams.Add(item.GramsPerItem())
	}

	weight, err := kernel.NewCents(grams.Mul(rate.CentsPerGram))
	if err != nil {
		return kernel.Cents{}, fmt.Errorf("price %s shipment: %w", code, err)
	}

	return rate.Base.Add(weight), nil
}
