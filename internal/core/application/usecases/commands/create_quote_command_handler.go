package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateQuoteCommandHandler prices the requested carriers for an order and
// attaches the quotes to it.
type CreateQuoteCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

func NewCreateQuoteCommandHandler(uowFactory OrderUoWFactory, lifecycle services.OrderLifecycle) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle returns the quote outcome. Only Succeeded writes the new status and
// quote list; every other outcome leaves the order untouched.
func (h CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) (services.QuoteOutcome, error) {
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

	outcome, err := h.lifecycle.DeriveQuoteOutcome(current, cmd.Carriers())
	if err != nil {
		return nil, err
	}

	succeeded, ok := outcome.(services.Succeeded)
	if !ok {
		return outcome, nil
	}

	if _, err = orderRepo.Update(ctx, ports.QuotePatch(succeeded.Order)); err != nil {
		return nil, fmt.Errorf("update order %s: %w", cmd.OrderID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return outcome, nil
}
