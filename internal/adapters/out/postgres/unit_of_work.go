// Package postgres provides the GORM-based order store.
//
// Every unit of work is one database transaction. Repository reads inside the
// transaction lock the order row (SELECT ... FOR UPDATE), so two commands on
// the same order cannot interleave their read and write.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	current, err := uow.OrderRepository().Get(ctx, id)
//	// ... derive the outcome
//	if _, err := uow.OrderRepository().Update(ctx, patch); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory hands out one transaction-scoped unit of work per command.
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	opts []orderrepo.Option
}

// NewGormUnitOfWorkFactory wraps db. opts are passed on to every order
// repository a unit of work builds, which lets tests pin the creation clock.
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...orderrepo.Option) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, opts: opts}
}

// Create returns an idle unit of work; nothing touches the database until Begin.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:   f.db,
		opts: f.opts,
	}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db   *gorm.DB
	tx   *gorm.DB
	opts []orderrepo.Option
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit commits the open transaction and releases the order row locks taken
// during it. Without an open transaction it returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	return tx.Commit().Error
}

// Rollback aborts the open transaction. Handlers defer it right after Begin,
// so after a successful Commit it returns gorm.ErrInvalidTransaction and
// changes nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	return tx.Rollback().Error
}

// OrderRepository binds a repository to the open transaction, or to the pool
// when Begin has not been called.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow.opts...)
}
