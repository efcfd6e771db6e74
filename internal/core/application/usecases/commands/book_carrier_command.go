package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrBookCarrierCommandIsNotConstructed = errors.New(
	"BookCarrierCommand must be created via NewBookCarrierCommand constructor",
)

// BookCarrierCommand asks to book a previously quoted carrier for an order.
type BookCarrierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	carrier carrier.Code

	guard guard.ConstructorGuard
}

func NewBookCarrierCommand(orderID kernel.OrderID, code carrier.Code) (BookCarrierCommand, error) {
	cmd := BookCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarrier(code),
	); err != nil {
		return BookCarrierCommand{}, err
	}

	return cmd, nil
}

func (c BookCarrierCommand) Validate() error {
	return c.guard.Validate(ErrBookCarrierCommandIsNotConstructed)
}

func (c BookCarrierCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c BookCarrierCommand) Carrier() carrier.Code {
	return c.carrier
}

func (c *BookCarrierCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *BookCarrierCommand) setCarrier(code carrier.Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	c.carrier = code
	return nil
}
