package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelStaleOrdersCommandHandler cancels Received and Quoted orders that were
// created before the command's cutoff. All cancellations share one unit of
// work: either every stale order is cancelled or none is.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle services.OrderLifecycle,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle returns the number of orders cancelled.
func (h CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.FilterReceivedBefore(ctx, cmd.Cutoff(), order.Received, order.Quoted)
	if err != nil {
		return 0, fmt.Errorf("find stale orders: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	cancelled := 0
	for _, candidate := range stale {
		// the listing is not locked; re-read under the order's lock
		current, err := orderRepo.Get(ctx, candidate.ID())
		if err != nil {
			return 0, fmt.Errorf("get order %s: %w", candidate.ID(), err)
		}
		if current == nil {
			continue
		}

		outcome, err := h.lifecycle.DeriveCancelOutcome(current)
		if err != nil {
			return 0, err
		}
		succeeded, ok := outcome.(services.Succeeded)
		if !ok {
			continue
		}
		if _, err = orderRepo.Update(ctx, ports.StatusPatch(succeeded.Order)); err != nil {
			return 0, fmt.Errorf("cancel order %s: %w", current.ID(), err)
		}
		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cancelled, nil
}
