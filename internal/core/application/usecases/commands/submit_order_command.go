package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand carries a customer's raw submission. The order itself is validated
// and priced by the handler, so a malformed submission still builds a command and fails
// on Handle without touching the store.
//
// Example:
//
//	eggs := 2
//	cmd := NewSubmitOrderCommand(order.NewOrderInput{CustomerName: "Ana", EggBoxes: &eggs})
//	id, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct {
	input order.NewOrderInput

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand copies input, so later changes to the caller's quantities do
// not leak into the command.
func NewSubmitOrderCommand(input order.NewOrderInput) SubmitOrderCommand {
	return SubmitOrderCommand{
		input: order.NewOrderInput{
			CustomerName: input.CustomerName,
			Phone:        input.Phone,
			EggBoxes:     copyInt(input.EggBoxes),
			OilCans:      copyInt(input.OilCans),
		},
		guard: guard.NewConstructorGuard(),
	}
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Input() order.NewOrderInput {
	return c.input
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
