package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler registers new orders.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, lifecycle)
//	outcome, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	switch o := outcome.(type) {
//	case services.Succeeded:          // stored, o.Order is Received
//	case services.OrderAlreadyExists: // nothing written, o.Order is the stored one
//	case services.OrderHasNoLineItems:
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, lifecycle services.OrderLifecycle) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle looks the id up, derives the create outcome and stores the new order
// when the outcome is Succeeded. A duplicate id reported by the store at that
// point means a concurrent create committed first; the stored order is read
// back and reported as OrderAlreadyExists.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (services.CreateOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", cmd.OrderID(), err)
	}

	outcome, err := h.lifecycle.DeriveCreateOutcome(services.CreateOrderInput{
		ID:       cmd.OrderID(),
		Customer: cmd.Customer(),
		Items:    cmd.Items(),
	}, current)
	if err != nil {
		return nil, err
	}

	succeeded, ok := outcome.(services.Succeeded)
	if !ok {
		return outcome, nil
	}

	if err = orderRepo.Add(ctx, succeeded.Order); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return h.stored(ctx, cmd.OrderID(), err)
		}
		return nil, fmt.Errorf("add order %s: %w", cmd.OrderID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return outcome, nil
}

// stored reads the order a concurrent create committed. The failed unit of
// work cannot be reused: postgres aborts a transaction after a unique violation.
func (h CreateOrderCommandHandler) stored(ctx context.Context, id kernel.OrderID, cause error) (services.CreateOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("add order %s: %w", id, cause)
	}

	return services.OrderAlreadyExists{Order: existing}, nil
}
