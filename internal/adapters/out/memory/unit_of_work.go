package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrUnitOfWorkNotActive is returned when a unit of work is used outside
// Begin and Commit/Rollback.
var ErrUnitOfWorkNotActive = errors.New("unit of work is not active")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes against a Store. It locks every order id it
// touches; a second unit of work touching the same id waits until the first
// one commits or rolls back.
//
// A unit of work that touches several orders locks them in creation order, as
// the stale order sweep does, so two of them cannot wait on each other.
type UnitOfWork struct {
	store  *Store
	active bool
	staged map[string]record
	added  []string
	held   map[string]struct{}
}

// Begin starts the unit of work. Locks are taken later, per order.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	uow.active = true
	uow.staged = make(map[string]record)
	uow.added = nil
	uow.held = make(map[string]struct{})
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrUnitOfWorkNotActive
	}
	uow.store.apply(uow.staged, uow.added)
	uow.finish()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrUnitOfWorkNotActive
	}
	uow.finish()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) finish() {
	for id := range uow.held {
		uow.store.unlock(id)
	}
	uow.active = false
	uow.staged = nil
	uow.added = nil
	uow.held = nil
}

// lockOrder takes the lock of id unless the unit of work already holds it.
func (uow *UnitOfWork) lockOrder(ctx context.Context, id string) error {
	if !uow.active {
		return ErrUnitOfWorkNotActive
	}
	if _, ok := uow.held[id]; ok {
		return nil
	}
	if err := uow.store.lock(ctx, id); err != nil {
		return err
	}
	uow.held[id] = struct{}{}
	return nil
}

// lookup returns the staged record for id, falling back to the committed one.
func (uow *UnitOfWork) lookup(id string) (record, bool) {
	if rec, ok := uow.staged[id]; ok {
		return rec, true
	}
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	if i, ok := uow.store.index[id]; ok {
		return uow.store.records[i], true
	}
	return record{}, false
}

// view merges staged records over the committed ones, keeping insertion order.
func (uow *UnitOfWork) view() []record {
	records := uow.store.snapshot()
	for i, rec := range records {
		if staged, ok := uow.staged[rec.order.ID().String()]; ok {
			records[i] = staged
		}
	}
	for _, id := range uow.added {
		records = append(records, uow.staged[id])
	}
	return records
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := r.uow.lockOrder(ctx, id.String()); err != nil {
		return nil, err
	}
	if rec, ok := r.uow.lookup(id.String()); ok {
		return rec.order, nil
	}
	return nil, nil
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrUnitOfWorkNotActive
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	if err := r.uow.lockOrder(ctx, id); err != nil {
		return err
	}
	if _, exists := r.uow.lookup(id); exists {
		return errs.NewObjectAlreadyExistsError("orderId", id)
	}

	r.uow.staged[id] = record{order: aggregate, createdAt: r.uow.store.now()}
	r.uow.added = append(r.uow.added, id)
	return nil
}

func (r *orderRepository) Update(ctx context.Context, patch ports.OrderPatch) (*order.Order, error) {
	id := patch.ID.String()
	if err := r.uow.lockOrder(ctx, id); err != nil {
		return nil, err
	}

	rec, ok := r.uow.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}

	merged, err := patch.ApplyTo(rec.order)
	if err != nil {
		return nil, err
	}

	r.uow.staged[id] = record{order: merged, createdAt: rec.createdAt}
	return merged, nil
}

func (r *orderRepository) Filter(_ context.Context, status *order.Status) ([]*order.Order, error) {
	if !r.uow.active {
		return nil, ErrUnitOfWorkNotActive
	}
	return filter(r.uow.view(), status), nil
}

func (r *orderRepository) FilterReceivedBefore(
	_ context.Context,
	cutoff time.Time,
	statuses ...order.Status,
) ([]*order.Order, error) {
	if !r.uow.active {
		return nil, ErrUnitOfWorkNotActive
	}

	orders := make([]*order.Order, 0)
	for _, rec := range r.uow.view() {
		if !rec.createdAt.Before(cutoff) {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, rec.order.Status()) {
			continue
		}
		orders = append(orders, rec.order)
	}
	return orders, nil
}
