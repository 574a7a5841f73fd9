package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"
)

// DeleteAllOrdersCommandHandler reads the current identifiers from the store, deletes
// them in one atomic batch and clears the local view. If the batch fails, the store
// keeps every order and the view is left unchanged.
type DeleteAllOrdersCommandHandler struct {
	orders LocalOrders
	store  ports.OrderStore
}

func NewDeleteAllOrdersCommandHandler(orders LocalOrders, store ports.OrderStore) DeleteAllOrdersCommandHandler {
	return DeleteAllOrdersCommandHandler{orders: orders, store: store}
}

// Handle returns the number of deleted orders.
func (h *DeleteAllOrdersCommandHandler) Handle(ctx context.Context, cmd DeleteAllOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	snapshot, err := h.store.ListByCreatedDesc(ctx)
	if err != nil {
		return 0, storeWriteError("delete all orders", err)
	}

	ids := make([]kernel.UUID, 0, len(snapshot))
	for _, o := range snapshot {
		ids = append(ids, o.ID())
	}

	if err = h.store.DeleteAll(ctx, ids); err != nil {
		return 0, storeWriteError("delete all orders", err)
	}

	h.orders.Clear()
	return len(ids), nil
}
