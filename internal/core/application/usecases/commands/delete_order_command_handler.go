package commands

import (
	"context"
	"errors"

	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// DeleteOrderCommandHandler deletes one order from the store and then from the local
// view. An order the store no longer has is dropped from the view as well, and the
// not found error is still returned.
type DeleteOrderCommandHandler struct {
	orders LocalOrders
	store  ports.OrderStore
}

func NewDeleteOrderCommandHandler(orders LocalOrders, store ports.OrderStore) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{orders: orders, store: store}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.store.Delete(ctx, cmd.OrderID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.orders.Remove(cmd.OrderID())
		}
		return storeWriteError("delete order", err)
	}

	h.orders.Remove(cmd.OrderID())
	return nil
}
