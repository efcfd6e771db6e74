package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item did not go through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order. Items are immutable once part of an order.
type Item struct {
	sku          string
	price        decimal.Decimal
	gramsPerItem decimal.Decimal
	quantity     int
	guard        guard.ConstructorGuard
}

// NewItem validates and builds an order line.
//
// Parameters:
//   - sku: stock keeping unit, must not be blank
//   - price: unit price in currency units, must not be negative
//   - gramsPerItem: weight of one unit, must not be negative
//   - quantity: number of units, must not be negative
//
// Returns:
//   - Item: the line if every field is valid
//   - error: all validation failures joined together
//
// Example:
//
//	item, err := order.NewItem("SKU-1", decimal.NewFromInt(20), decimal.NewFromInt(100), 1)
func NewItem(sku string, price, gramsPerItem decimal.Decimal, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setSKU(sku),
		item.setPrice(price),
		item.setGramsPerItem(gramsPerItem),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) SKU() string {
	return i.sku
}

func (i Item) Price() decimal.Decimal {
	return i.price
}

func (i Item) GramsPerItem() decimal.Decimal {
	return i.gramsPerItem
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeErrorWithCause("price", price.String(), 0, "unbounded",
			fmt.Errorf("%s is negative", price.String()))
	}
	i.price = price
	return nil
}

func (i *Item) setGramsPerItem(grams decimal.Decimal) error {
	if grams.IsNegative() {
		return errs.NewValueIsOutOfRangeErrorWithCause("gramsPerItem", grams.String(), 0, "unbounded",
			fmt.Errorf("%s is negative", grams.String()))
	}
	i.gramsPerItem = grams
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	i.quantity = quantity
	return nil
}
