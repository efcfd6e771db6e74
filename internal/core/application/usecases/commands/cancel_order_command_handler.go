package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels Received and Quoted orders.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, lifecycle services.OrderLifecycle) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (services.CancelOutcome, error) {
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

	outcome, err := h.lifecycle.DeriveCancelOutcome(current)
	if err != nil {
		return nil, err
	}

	succeeded, ok := outcome.(services.Succeeded)
	if !ok {
		return outcome, nil
	}

	if _, err = orderRepo.Update(ctx, ports.StatusPatch(succeeded.Order)); err != nil {
		return nil, fmt.Errorf("update order %s: %w", cmd.OrderID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return outcome, nil
}
