// Package commands contains the operations that change orders.
// Every handler follows the same flow: validate the command, open a unit of
// work, read the current order, let the order lifecycle decide the outcome and
// write the order back only when the outcome is a success.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages one order command.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   current, err := uow.OrderRepository().Get(ctx, id)
	//   // ... derive the outcome, write on success
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// FuncOrderUoWFactory adapts a function to OrderUoWFactory.
type FuncOrderUoWFactory func() OrderUoW

func (f FuncOrderUoWFactory) Create() OrderUoW {
	return f()
}
