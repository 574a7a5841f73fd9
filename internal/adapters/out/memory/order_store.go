// Package memory provides an in-process OrderStore. It backs local runs and the
// end-to-end tests of the views and commands.
package memory

import (
	"context"
	"sync"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/stream"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore keeps orders in a map guarded by a mutex. Creation times come from a
// strictly increasing clock, so snapshots are totally ordered.
type OrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*order.Order
	watchers map[*watcher]struct{}
	clock    clock.Clock
}

type watcher struct {
	signal chan struct{}
}

// Option configures an OrderStore.
type Option func(*OrderStore)

// WithClock sets the time source for creation timestamps. It is wrapped in a monotonic
// clock.
func WithClock(c clock.Clock) Option {
	return func(s *OrderStore) {
		s.clock = clock.NewMonotonic(c)
	}
}

func NewOrderStore(opts ...Option) *OrderStore {
	s := &OrderStore{
		orders:   make(map[string]*order.Order),
		watchers: make(map[*watcher]struct{}),
		clock:    clock.NewMonotonic(clock.NewSystem()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *OrderStore) Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error) {
	if err := ctx.Err(); err != nil {
		return kernel.UUID{}, errs.NewStoreWriteError("create", err)
	}

	s.mu.Lock()
	o, err := order.NewOrder(kernel.NewUUID(), s.clock.Now(), draft)
	if err != nil {
		s.mu.Unlock()
		return kernel.UUID{}, err
	}
	s.orders[o.ID().String()] = o
	s.mu.Unlock()

	s.notify()
	return o.ID(), nil
}

func (s *OrderStore) ListByCreatedDesc(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *OrderStore) Watch(ctx context.Context, onChange func([]*order.Order)) (ports.Watch, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewSubscriptionError(err)
	}

	w := &watcher{signal: make(chan struct{}, 1)}
	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	return stream.Start(ctx, func(ctx context.Context) error {
		defer func() {
			s.mu.Lock()
			delete(s.watchers, w)
			s.mu.Unlock()
		}()

		for {
			snapshot := s.snapshot()
			if ctx.Err() != nil {
				return nil
			}
			onChange(snapshot)

			select {
			case <-ctx.Done():
				return nil
			case <-w.signal:
			}
		}
	}), nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.NewStoreWriteError("update status", err)
	}

	s.mu.Lock()
	current, ok := s.orders[change.OrderID().String()]
	if !ok {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("order", change.OrderID().String())
	}
	updated := current.Clone()
	if err := updated.Apply(change); err != nil {
		s.mu.Unlock()
		return err
	}
	s.orders[change.OrderID().String()] = updated
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.NewStoreWriteError("delete", err)
	}

	s.mu.Lock()
	if _, ok := s.orders[id.String()]; !ok {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("order", id.String())
	}
	delete(s.orders, id.String())
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteAll checks every id before removing any, so a batch naming an unknown order
// removes nothing.
func (s *OrderStore) DeleteAll(ctx context.Context, ids []kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return errs.NewStoreWriteError("delete all", err)
	}

	s.mu.Lock()
	for _, id := range ids {
		if _, ok := s.orders[id.String()]; !ok {
			s.mu.Unlock()
			return errs.NewStoreWriteError("delete all", errs.NewObjectNotFoundError("order", id.String()))
		}
	}
	for _, id := range ids {
		delete(s.orders, id.String())
	}
	s.mu.Unlock()

	if len(ids) > 0 {
		s.notify()
	}
	return nil
}

func (s *OrderStore) snapshot() []*order.Order {
	s.mu.RLock()
	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	s.mu.RUnlock()

	order.SortByCreatedDesc(out)
	return out
}

// notify wakes every watcher. A watcher that has not consumed the previous signal yet
// will read the newer state anyway, so the send is dropped.
func (s *OrderStore) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for w := range s.watchers {
		select {
		case w.signal <- struct{}{}:
		default:
		}
	}
}
