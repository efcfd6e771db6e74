package queries

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// ListOrdersQueryHandler returns orders in creation order.
type ListOrdersQueryHandler struct {
	reader OrderReader
}

func NewListOrdersQueryHandler(reader OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: reader}
}

// Handle never returns a nil slice, so an empty store lists as [].
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.Filter(ctx, query.Status())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	return orders, nil
}
