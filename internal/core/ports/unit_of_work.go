package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the boundary of one command: the order read, the lifecycle
// decision and the write all happen between Begin and Commit, and no other
// unit of work can change the same order in between.
type UnitOfWork interface {
	// Begin starts the unit of work.
	Begin(ctx context.Context) error

	// Commit makes the writes visible.
	// Returns error if no unit of work is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the writes. After Commit it changes nothing and returns
	// an error, so handlers can defer it unconditionally.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the unit of work.
	OrderRepository() OrderRepository
}
