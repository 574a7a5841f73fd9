package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"
	"orderdesk/internal/pkg/errs"
)

// ToggleDeliveryCommandHandler flips the delivery state of an order as currently shown
// by the local view.
//
// The flip is staged on the local set before the store write, so the view reflects it
// at once. When the store acknowledges, the change is confirmed; when it fails, the
// change is reverted and the error is returned.
type ToggleDeliveryCommandHandler struct {
	orders LocalOrders
	store  ports.OrderStore
	clock  clock.Clock
}

func NewToggleDeliveryCommandHandler(
	orders LocalOrders,
	store ports.OrderStore,
	clk clock.Clock,
) ToggleDeliveryCommandHandler {
	return ToggleDeliveryCommandHandler{orders: orders, store: store, clock: clk}
}

func (h *ToggleDeliveryCommandHandler) Handle(ctx context.Context, cmd ToggleDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return toggleStatus(ctx, h.orders, h.store, cmd.OrderID(), func(o *order.Order) (order.StatusChange, error) {
		return order.ToggleDeliveryOf(o, h.clock.Now())
	})
}

// TogglePaidCommandHandler flips the paid flag with the same optimistic flow as
// ToggleDeliveryCommandHandler.
type TogglePaidCommandHandler struct {
	orders LocalOrders
	store  ports.OrderStore
	clock  clock.Clock
}

func NewTogglePaidCommandHandler(
	orders LocalOrders,
	store ports.OrderStore,
	clk clock.Clock,
) TogglePaidCommandHandler {
	return TogglePaidCommandHandler{orders: orders, store: store, clock: clk}
}

func (h *TogglePaidCommandHandler) Handle(ctx context.Context, cmd TogglePaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return toggleStatus(ctx, h.orders, h.store, cmd.OrderID(), func(o *order.Order) (order.StatusChange, error) {
		return order.TogglePaidOf(o, h.clock.Now())
	})
}

func toggleStatus(
	ctx context.Context,
	orders LocalOrders,
	store ports.OrderStore,
	id kernel.UUID,
	next func(*order.Order) (order.StatusChange, error),
) error {
	current, ok := orders.Find(id)
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	change, err := next(current)
	if err != nil {
		return err
	}

	orders.Stage(change)
	if err = store.UpdateStatus(ctx, change); err != nil {
		orders.Revert(change)
		return storeWriteError("update "+change.Field().String(), err)
	}
	orders.Confirm(change)
	return nil
}
