package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, optionally only those in one status.
//
// Example:
//
//	quoted := order.Quoted
//	query, err := NewListOrdersQuery(&quoted)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. A nil status lists every order.
func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	query := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		query.status = &s
	}
	return query, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter, or nil when every order is listed.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}
