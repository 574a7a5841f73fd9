package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// SubmitOrderCommandHandler is the submission pipeline: validate, price, and issue
// exactly one create to the store. It never retries; a StoreWriteError is returned to
// the caller, who may resubmit.
type SubmitOrderCommandHandler struct {
	store   ports.OrderStore
	catalog order.Catalog
}

func NewSubmitOrderCommandHandler(store ports.OrderStore, catalog order.Catalog) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		store:   store,
		catalog: catalog,
	}
}

// Handle returns the identifier assigned by the store. Validation errors are returned
// before any write is attempted.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	draft, err := order.NewDraft(cmd.Input(), h.catalog)
	if err != nil {
		return kernel.UUID{}, err
	}

	id, err := h.store.Create(ctx, draft)
	if err != nil {
		return kernel.UUID{}, storeWriteError("create order", err)
	}
	return id, nil
}
