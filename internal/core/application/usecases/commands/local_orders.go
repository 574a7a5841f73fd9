package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// LocalOrders is the view-local order set the status mutator reads from and patches.
// views.OrderSet implements it.
type LocalOrders interface {
	Find(id kernel.UUID) (*order.Order, bool)
	Stage(change order.StatusChange)
	Confirm(change order.StatusChange)
	Revert(change order.StatusChange)
	Remove(id kernel.UUID)
	Clear()
}

// storeWriteError wraps a store failure unless it already carries a meaning the caller
// acts on (validation, not found, or an existing store write error).
func storeWriteError(op string, err error) error {
	if errs.IsValidation(err) || errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrStoreWrite) {
		return err
	}
	return errs.NewStoreWriteError(op, err)
}
