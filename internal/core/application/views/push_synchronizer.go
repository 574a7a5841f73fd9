package views

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// Snapshot is what a push subscriber receives on every change: the complete ordered set
// and the statistics derived from it.
type Snapshot struct {
	Orders     []*order.Order
	Statistics services.Statistics
}

// PushSynchronizer feeds the live monitor. Each subscription keeps its own OrderSet,
// replaced wholesale on every store notification.
type PushSynchronizer struct {
	store  ports.OrderStore
	logger *slog.Logger
}

func NewPushSynchronizer(store ports.OrderStore, logger *slog.Logger) *PushSynchronizer {
	return &PushSynchronizer{
		store:  store,
		logger: logger.With("component", "PushSynchronizer"),
	}
}

// Subscribe opens a standing watch and calls onChange with every snapshot, one call at a
// time. The caller must release the returned subscription; cancelling ctx releases it
// too. A transport error ends delivery and is reported by Err; there is no reconnect.
func (p *PushSynchronizer) Subscribe(ctx context.Context, onChange func(Snapshot)) (*Subscription, error) {
	set := NewOrderSet(order.PreferSnapshot)
	watch, err := p.store.Watch(ctx, func(orders []*order.Order) {
		set.Replace(orders)
		onChange(Snapshot{Orders: set.Orders(), Statistics: set.Statistics()})
	})
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "subscription opened")
	return &Subscription{watch: watch, set: set}, nil
}

// Subscription is a cancellable handle on a push watch.
type Subscription struct {
	watch ports.Watch
	set   *OrderSet
}

// Unsubscribe releases the watch. It is idempotent.
func (s *Subscription) Unsubscribe() {
	s.watch.Stop()
}

// Done is closed once no further snapshot will be delivered.
func (s *Subscription) Done() <-chan struct{} {
	return s.watch.Done()
}

// Err returns the SubscriptionError that ended delivery, if any.
func (s *Subscription) Err() error {
	return s.watch.Err()
}

// Latest returns the last snapshot delivered to this subscription.
func (s *Subscription) Latest() Snapshot {
	return Snapshot{Orders: s.set.Orders(), Statistics: s.set.Statistics()}
}
