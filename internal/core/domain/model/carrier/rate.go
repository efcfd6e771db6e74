package carrier

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Rate is what a carrier charges for one shipment: a flat base fee plus a
// price per gram of goods.
type Rate struct {
	Base         kernel.Cents
	CentsPerGram decimal.Decimal
}

// rates is fixed at build time. There is no runtime override.
var rates = map[Code]Rate{
	UPS:   {Base: kernel.CentsFromInt(800), CentsPerGram: decimal.RequireFromString("0.05")},
	USPS:  {Base: kernel.CentsFromInt(1050), CentsPerGram: decimal.RequireFromString("0.02")},
	FEDEX: {Base: kernel.CentsFromInt(1000), CentsPerGram: decimal.RequireFromString("0.03")},
}

// RateFor returns the rate of code, or ErrUnknownCarrier.
func RateFor(code Code) (Rate, error) {
	rate, ok := rates[code]
	if !ok {
		return Rate{}, fmt.Errorf("%w: %s", ErrUnknownCarrier, code)
	}
	return rate, nil
}
