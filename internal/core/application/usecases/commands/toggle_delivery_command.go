package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrToggleDeliveryCommandIsNotConstructed = errors.New(
	"ToggleDeliveryCommand must be created via NewToggleDeliveryCommand constructor",
)

// ToggleDeliveryCommand flips an order between pending and delivered.
type ToggleDeliveryCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewToggleDeliveryCommand(orderID kernel.UUID) (ToggleDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ToggleDeliveryCommand{}, err
	}
	return ToggleDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ToggleDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrToggleDeliveryCommandIsNotConstructed)
}

func (c ToggleDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
