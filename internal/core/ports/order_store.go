// Package ports defines the contracts between the order desk core and the outside world:
// the order store, the access guard and the event publisher.
package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderStore is the persistent, subscribable collection of all orders. It is the single
// source of truth and the only serialization point: concurrent writes to the same order
// race and the later one wins.
//
// Write failures are reported as errs.StoreWriteError; callers do not interpret
// store-specific error codes.
type OrderStore interface {
	// Create stores draft as a new Pending, unpaid order. The store assigns the identifier
	// and a creation time that is strictly increasing across creations.
	Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error)

	// ListByCreatedDesc reads a one-shot snapshot, newest first.
	ListByCreatedDesc(ctx context.Context) ([]*order.Order, error)

	// Watch delivers the complete snapshot, newest first, once on start and again after
	// every change by any writer. Deliveries are sequential; bursts may be coalesced so
	// that only the latest state is delivered. The watch ends when ctx is cancelled, when
	// Stop is called, or on a transport error, which is reported by Err as an
	// errs.SubscriptionError. It never reconnects.
	Watch(ctx context.Context, onChange func([]*order.Order)) (Watch, error)

	// UpdateStatus writes the single field carried by change. It fails with
	// errs.ObjectNotFoundError when the order does not exist.
	UpdateStatus(ctx context.Context, change order.StatusChange) error

	// Delete removes one order. It fails with errs.ObjectNotFoundError when the order
	// does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteAll removes every order in ids in one atomic batch: either all are removed
	// or none are.
	DeleteAll(ctx context.Context, ids []kernel.UUID) error
}

// Watch is a standing subscription. Stop must be called by whoever opened it.
type Watch interface {
	// Stop releases the subscription. It is idempotent and does not wait for delivery
	// to end; use Done for that.
	Stop()

	// Done is closed once no further snapshot will be delivered.
	Done() <-chan struct{}

	// Err returns the error that ended the watch, or nil if it was stopped.
	Err() error
}
