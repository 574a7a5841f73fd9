package views

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// PullSynchronizer feeds the management view. It is not live: the set only changes when
// Refresh is called or when a status mutation patches it.
type PullSynchronizer struct {
	store ports.OrderStore
	set   *OrderSet
}

func NewPullSynchronizer(store ports.OrderStore, set *OrderSet) *PullSynchronizer {
	return &PullSynchronizer{store: store, set: set}
}

// Refresh reads one snapshot and replaces the whole set with it. On failure the set is
// left as it was.
func (p *PullSynchronizer) Refresh(ctx context.Context) ([]*order.Order, error) {
	snapshot, err := p.store.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, errs.NewStoreReadError("list orders", err)
	}
	p.set.Replace(snapshot)
	return p.set.Orders(), nil
}

// Set returns the order set this synchronizer maintains.
func (p *PullSynchronizer) Set() *OrderSet {
	return p.set
}
