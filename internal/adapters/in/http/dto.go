package http

import (
	"encoding/json"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Item is an order line as sent by clients. Amounts accept JSON numbers.
type Item struct {
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	GramsPerItem decimal.Decimal `json:"gramsPerItem"`
	Quantity     int             `json:"quantity"`
}

type NewOrder struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Items    []Item `json:"items"`
}

type NewQuote struct {
	Carriers []string `json:"carriers"`
}

type NewBooking struct {
	Carrier string `json:"carrier"`
}

type ItemResponse struct {
	SKU          string      `json:"sku"`
	Price        json.Number `json:"price"`
	GramsPerItem json.Number `json:"gramsPerItem"`
	Quantity     int         `json:"quantity"`
}

type QuoteResponse struct {
	Carrier    string      `json:"carrier"`
	PriceCents json.Number `json:"priceCents"`
}

type OrderResponse struct {
	ID               string          `json:"id"`
	Customer         string          `json:"customer"`
	Items            []ItemResponse  `json:"items"`
	Status           string          `json:"status"`
	Quotes           []QuoteResponse `json:"quotes"`
	CarrierBooked    *string         `json:"carrierBooked,omitempty"`
	CarrierPricePaid *json.Number    `json:"carrierPricePaid,omitempty"`
}

type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// OutcomeResponse is the body of every command response. Only the fields of
// the outcome variant are present.
type OutcomeResponse struct {
	Outcome  string           `json:"outcome"`
	Order    *OrderResponse   `json:"order,omitempty"`
	Quote    *QuoteResponse   `json:"quote,omitempty"`
	Quotes   *[]QuoteResponse `json:"quotes,omitempty"`
	Expected string           `json:"expected,omitempty"`
	Actual   string           `json:"actual,omitempty"`
}

type HealthResponse struct {
	BuildNumber string `json:"buildNumber"`
	CommitHash  string `json:"commitHash"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (o NewOrder) toDomain() (kernel.OrderID, []order.Item, error) {
	id, err := kernel.NewOrderID(o.ID)
	if err != nil {
		return kernel.OrderID{}, nil, err
	}

	items := make([]order.Item, 0, len(o.Items))
	for _, dto := range o.Items {
		item, itemErr := order.NewItem(dto.SKU, dto.Price, dto.GramsPerItem, dto.Quantity)
		if itemErr != nil {
			return kernel.OrderID{}, nil, itemErr
		}
		items = append(items, item)
	}

	return id, items, nil
}

func (q NewQuote) toDomain() ([]carrier.Code, error) {
	codes := make([]carrier.Code, 0, len(q.Carriers))
	for _, name := range q.Carriers {
		code, err := carrier.ParseCode(name)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:       o.ID().String(),
		Customer: o.Customer(),
		Items:    make([]ItemResponse, 0, len(o.Items())),
		Status:   o.Status().String(),
		Quotes:   toQuoteResponses(o.Quotes()),
	}

	for _, item := range o.Items() {
		resp.Items = append(resp.Items, ItemResponse{
			SKU:          item.SKU(),
			Price:        number(item.Price()),
			GramsPerItem: number(item.GramsPerItem()),
			Quantity:     item.Quantity(),
		})
	}

	if code, ok := o.CarrierBooked(); ok {
		name := code.String()
		resp.CarrierBooked = &name
	}
	if paid, ok := o.CarrierPricePaid(); ok {
		amount := number(paid.Decimal())
		resp.CarrierPricePaid = &amount
	}

	return resp
}

func toQuoteResponse(q order.Quote) *QuoteResponse {
	return &QuoteResponse{
		Carrier:    q.Carrier().String(),
		PriceCents: number(q.PriceCents().Decimal()),
	}
}

func toQuoteResponses(quotes []order.Quote) []QuoteResponse {
	resp := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, *toQuoteResponse(q))
	}
	return resp
}
