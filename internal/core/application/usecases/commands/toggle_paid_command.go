package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var ErrTogglePaidCommandIsNotConstructed = errors.New(
	"TogglePaidCommand must be created via NewTogglePaidCommand constructor",
)

// TogglePaidCommand flips the manual paid flag of an order.
type TogglePaidCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewTogglePaidCommand(orderID kernel.UUID) (TogglePaidCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TogglePaidCommand{}, err
	}
	return TogglePaidCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c TogglePaidCommand) Validate() error {
	return c.guard.Validate(ErrTogglePaidCommandIsNotConstructed)
}

func (c TogglePaidCommand) OrderID() kernel.UUID {
	return c.orderID
}
