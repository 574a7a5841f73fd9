package commands

import (
	"errors"

	"orderdesk/internal/pkg/guard"
)

var ErrDeleteAllOrdersCommandIsNotConstructed = errors.New(
	"DeleteAllOrdersCommand must be created via NewDeleteAllOrdersCommand constructor",
)

// DeleteAllOrdersCommand empties the order collection. Confirmation is the caller's
// concern.
type DeleteAllOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewDeleteAllOrdersCommand() DeleteAllOrdersCommand {
	return DeleteAllOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c DeleteAllOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAllOrdersCommandIsNotConstructed)
}
