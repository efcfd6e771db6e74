package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateQuoteCommandIsNotConstructed = errors.New(
		"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
	)
	ErrCarriersAreRequired = errs.NewValueIsRequiredError("carriers")
)

// CreateQuoteCommand asks for shipping quotes from one or more carriers.
//
// Example:
//
//	cmd, err := NewCreateQuoteCommand(kernel.MustOrderID("1"), []carrier.Code{carrier.UPS, carrier.FEDEX})
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.OrderID
	carriers []carrier.Code

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand requires a valid order id and at least one known carrier.
func NewCreateQuoteCommand(orderID kernel.OrderID, carriers []carrier.Code) (CreateQuoteCommand, error) {
	cmd := CreateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCarriers(carriers),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	return cmd, nil
}

func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

func (c CreateQuoteCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Carriers returns the requested carriers in request order.
func (c CreateQuoteCommand) Carriers() []carrier.Code {
	return slices.Clone(c.carriers)
}

func (c *CreateQuoteCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateQuoteCommand) setCarriers(carriers []carrier.Code) error {
	if len(carriers) == 0 {
		return ErrCarriersAreRequired
	}
	for _, code := range carriers {
		if err := code.Validate(); err != nil {
			return err
		}
	}
	c.carriers = slices.Clone(carriers)
	return nil
}
