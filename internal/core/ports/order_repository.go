// Package ports defines the contracts between the fulfillment core and the
// storage adapters that back it.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations keep orders in creation order and may be swapped without
// touching the order lifecycle.
type OrderRepository interface {
	// Get retrieves an order by id. A missing order is (nil, nil): absence is a
	// normal result, not an error.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// Add persists a new order. It fails with *errs.ObjectAlreadyExistsError when
	// an order with the same id is already stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update merges patch into the stored order and returns the merged record.
	// It fails with *errs.ObjectNotFoundError when no order has patch.ID.
	Update(ctx context.Context, patch OrderPatch) (*order.Order, error)

	// Filter returns every order in creation order, or only those in status when
	// status is not nil. There is no pagination.
	Filter(ctx context.Context, status *order.Status) ([]*order.Order, error)

	// FilterReceivedBefore returns the orders created before cutoff whose status
	// is one of statuses, in creation order.
	//
	// Example:
	//   stale, err := repo.FilterReceivedBefore(ctx, time.Now().Add(-ttl), order.Received, order.Quoted)
	FilterReceivedBefore(ctx context.Context, cutoff time.Time, statuses ...order.Status) ([]*order.Order, error)
}

// StoreProbe checks that the order store can be reached.
type StoreProbe interface {
	Ping(ctx context.Context) error
}
