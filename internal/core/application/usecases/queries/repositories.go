// Package queries contains read-only operations over orders and the store.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// OrderReader is the read side of the order store used by queries.
// Reads see only committed orders.
type OrderReader interface {
	Filter(ctx context.Context, status *order.Status) ([]*order.Order, error)
}

// StoreProbe reports whether the store can be reached.
type StoreProbe = ports.StoreProbe
