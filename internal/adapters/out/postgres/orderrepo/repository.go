package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the SQLSTATE postgres reports for a duplicate key.
const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
// Inside a transaction Get locks the order row, so commands on the same order
// run one after another.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// Option configures a GormOrderRepository.
type Option func(*GormOrderRepository)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *GormOrderRepository) {
		r.now = now
	}
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, opts ...Option) *GormOrderRepository {
	r := &GormOrderRepository{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add inserts a new order with its items and quotes.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, r.now().UTC())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderId", dto.ID, err)
		}
		return err
	}

	return nil
}

// Update merges patch into the stored order and writes the changed columns.
// The quote rows are replaced when the patch names quotes.
func (r *GormOrderRepository) Update(ctx context.Context, patch ports.OrderPatch) (*order.Order, error) {
	current, err := r.Get(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errs.NewObjectNotFoundError("orderId", patch.ID.String())
	}

	merged, err := patch.ApplyTo(current)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(merged, time.Time{})
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":             dto.Status,
		"carrier_booked":     dto.CarrierBooked,
		"carrier_price_paid": dto.CarrierPricePaid,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", dto.ID)
	}

	if patch.Quotes != nil {
		if err = db.Where("order_id = ?", dto.ID).Delete(&QuoteDTO{}).Error; err != nil {
			return nil, err
		}
		if len(dto.Quotes) > 0 {
			if err = db.Create(&dto.Quotes).Error; err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

// Get retrieves an order by ID. A missing order is (nil, nil).
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// Filter lists orders in creation order, narrowed to status when it is not nil.
func (r *GormOrderRepository) Filter(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	query := r.preloaded(ctx)
	if status != nil {
		query = query.Where("status = ?", status.String())
	}
	return r.find(query)
}

// FilterReceivedBefore lists orders created before cutoff in the given
// statuses, or in any status when none is given.
func (r *GormOrderRepository) FilterReceivedBefore(
	ctx context.Context,
	cutoff time.Time,
	statuses ...order.Status,
) ([]*order.Order, error) {
	query := r.preloaded(ctx).Where("created_at < ?", cutoff.UTC())
	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		query = query.Where("status IN ?", names)
	}
	return r.find(query)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}
	return r.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("Quotes", byPosition)
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
