// Package orderrepo maps the order aggregate onto three tables: orders holds
// the order row, order_items and order_quotes hold its lines and quotes in
// position order.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status and carrier are stored by name.
type OrderDTO struct {
	ID               string           `gorm:"primaryKey"`
	Customer         string           `gorm:"not null"`
	Status           string           `gorm:"not null;index"`
	CarrierBooked    *string          `gorm:"column:carrier_booked"`
	CarrierPricePaid *decimal.Decimal `gorm:"column:carrier_price_paid;type:numeric"`
	CreatedAt        time.Time        `gorm:"not null;index"`

	Items  []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Quotes []QuoteDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	OrderID      string          `gorm:"primaryKey"`
	Position     int             `gorm:"primaryKey"`
	SKU          string          `gorm:"column:sku;not null"`
	Price        decimal.Decimal `gorm:"type:numeric;not null"`
	GramsPerItem decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity     int             `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type QuoteDTO struct {
	OrderID    string          `gorm:"primaryKey"`
	Position   int             `gorm:"primaryKey"`
	Carrier    string          `gorm:"not null"`
	PriceCents decimal.Decimal `gorm:"type:numeric;not null"`
}

func (QuoteDTO) TableName() string {
	return "order_quotes"
}

// fromDomain converts an order aggregate to its rows. createdAt is only
// written on insert.
func fromDomain(o *order.Order, createdAt time.Time) OrderDTO {
	dto := OrderDTO{
		ID:        o.ID().String(),
		Customer:  o.Customer(),
		Status:    o.Status().String(),
		CreatedAt: createdAt,
		Quotes:    quotesFromDomain(o.ID(), o.Quotes()),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:      dto.ID,
			Position:     i,
			SKU:          item.SKU(),
			Price:        item.Price(),
			GramsPerItem: item.GramsPerItem(),
			Quantity:     item.Quantity(),
		})
	}

	if code, ok := o.CarrierBooked(); ok {
		name := code.String()
		dto.CarrierBooked = &name
	}
	if paid, ok := o.CarrierPricePaid(); ok {
		amount := paid.Decimal()
		dto.CarrierPricePaid = &amount
	}

	return dto
}

func quotesFromDomain(id kernel.OrderID, quotes []order.Quote) []QuoteDTO {
	dtos := make([]QuoteDTO, 0, len(quotes))
	for i, q := range quotes {
		dtos = append(dtos, QuoteDTO{
			OrderID:    id.String(),
			Position:   i,
			Carrier:    q.Carrier().String(),
			PriceCents: q.PriceCents().Decimal(),
		})
	}
	return dtos
}

// toDomain rebuilds the aggregate through RestoreOrder, so rows that break an
// order invariant fail to load.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.NewOrderID(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, itemErr := order.NewItem(row.SKU, row.Price, row.GramsPerItem, row.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	quotes := make([]order.Quote, 0, len(dto.Quotes))
	for _, row := range dto.Quotes {
		q, quoteErr := quoteToDomain(row)
		if quoteErr != nil {
			return nil, quoteErr
		}
		quotes = append(quotes, q)
	}

	var booked *carrier.Code
	if dto.CarrierBooked != nil {
		code, parseErr := carrier.ParseCode(*dto.CarrierBooked)
		if parseErr != nil {
			return nil, parseErr
		}
		booked = &code
	}

	var paid *kernel.Cents
	if dto.CarrierPricePaid != nil {
		cents, centsErr := kernel.NewCents(*dto.CarrierPricePaid)
		if centsErr != nil {
			return nil, centsErr
		}
		paid = &cents
	}

	return order.RestoreOrder(id, dto.Customer, items, status, quotes, booked, paid)
}

func quoteToDomain(row QuoteDTO) (order.Quote, error) {
	code, err := carrier.ParseCode(row.Carrier)
	if err != nil {
		return order.Quote{}, err
	}
	cents, err := kernel.NewCents(row.PriceCents)
	if err != nil {
		return order.Quote{}, err
	}
	return order.NewQuote(code, cents)
}
