// Package memory provides the in-process implementation of the order store.
//
// Committed orders live in a slice kept in insertion order, indexed by id.
// Every order id has its own lock. A unit of work takes the lock of an id the
// first time it reads or writes that id and holds it until Commit or
// Rollback, so commands on the same order run one after the other while
// commands on different orders proceed in parallel. Writes are staged inside
// the unit of work until Commit applies them. Reads outside a unit of work see
// only committed orders and never wait for a lock.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type record struct {
	order     *order.Order
	createdAt time.Time
}

// Store holds committed orders.
type Store struct {
	mu      sync.RWMutex
	records []record
	index   map[string]int

	locksMu sync.Mutex
	locks   map[string]*idLock

	now func() time.Time
}

// idLock is a one slot semaphore for an order id. refs counts the holder and
// the waiters; the entry is dropped when it reaches zero.
type idLock struct {
	slot chan struct{}
	refs int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		index: make(map[string]int),
		locks: make(map[string]*idLock),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the committed order with id, or nil.
func (s *Store) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[id.String()]; ok {
		return s.records[i].order, nil
	}
	return nil, nil
}

// Filter lists committed orders in insertion order.
func (s *Store) Filter(_ context.Context, status *order.Status) ([]*order.Order, error) {
	return filter(s.snapshot(), status), nil
}

// Ping always succeeds: the store lives in the process.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len reports the number of committed orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) snapshot() []record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// lock waits for the lock of id or for ctx to be done.
func (s *Store) lock(ctx context.Context, id string) error {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &idLock{slot: make(chan struct{}, 1)}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	select {
	case l.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.unref(id, l)
		return ctx.Err()
	}
}

func (s *Store) unlock(id string) {
	s.locksMu.Lock()
	l := s.locks[id]
	s.locksMu.Unlock()

	<-l.slot
	s.unref(id, l)
}

func (s *Store) unref(id string, l *idLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
}

// apply commits staged records. Updates replace in place, additions are
// appended in the order they were staged.
func (s *Store) apply(staged map[string]record, added []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range staged {
		if i, ok := s.index[id]; ok {
			s.records[i] = rec
		}
	}
	for _, id := range added {
		s.index[id] = len(s.records)
		s.records = append(s.records, staged[id])
	}
}

func filter(records []record, status *order.Status) []*order.Order {
	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		if status != nil && rec.order.Status() != *status {
			continue
		}
		orders = append(orders, rec.order)
	}
	return orders
}
