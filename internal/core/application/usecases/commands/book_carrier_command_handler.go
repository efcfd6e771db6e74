package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// BookCarrierCommandHandler books a quoted carrier for an order.
//
// Example:
//
//	cmd, _ := NewBookCarrierCommand(kernel.MustOrderID("1"), carrier.UPS)
//	outcome, err := handler.Handle(ctx, cmd)
//	if noMatch, ok := outcome.(services.NoMatchingQuote); ok {
//	    // UPS was never quoted; noMatch.Quotes lists what was
//	}
type BookCarrierCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

func NewBookCarrierCommandHandler(uowFactory OrderUoWFactory, lifecycle services.OrderLifecycle) BookCarrierCommandHandler {
	return BookCarrierCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle returns the book outcome and, on Succeeded, writes the status together
// with carrierBooked and carrierPricePaid.
func (h BookCarrierCommandHandler) Handle(ctx context.Context, cmd BookCarrierCommand) (services.BookOutcome, error) {
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

	outcome, err := h.lifecycle.DeriveBookOutcome(current, cmd.Carrier())
	if err != nil {
		return nil, err
	}

	succeeded, ok := outcome.(services.Succeeded)
	if !ok {
		return outcome, nil
	}

	if _, err = orderRepo.Update(ctx, ports.BookingPatch(succeeded.Order)); err != nil {
		return nil, fmt.Errorf("update order %s: %w", cmd.OrderID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return outcome, nil
}
