package commands

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customer")
)

// CreateOrderCommand asks to register a new sales order.
//
// An empty items list is accepted here: the order lifecycle answers it with
// ORDER_HAS_NO_LINE_ITEMS rather than a validation error.
//
// Example:
//
//	item, _ := order.NewItem("SKU-1", decimal.NewFromInt(20), decimal.NewFromInt(100), 1)
//	cmd, err := NewCreateOrderCommand(kernel.MustOrderID("1"), "ACME", []order.Item{item})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	outcome, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.OrderID
	customer string
	items    []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order id and customer and keeps a copy of items.
func NewCreateOrderCommand(orderID kernel.OrderID, customer string, items []order.Item) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	if strings.TrimSpace(customer) == "" {
		return ErrCustomerIsRequired
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = slices.Clone(items)
	return nil
}
