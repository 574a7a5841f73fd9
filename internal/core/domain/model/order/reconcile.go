package order

import (
	"slices"
)

// ReconcilePolicy decides which orders a view shows, given the latest store snapshot
// (already sorted newest first) and the local changes the store has not yet
// acknowledged, in the order they were issued. Policies are pure: they must not modify
// snapshot, pending, or any order they receive.
type ReconcilePolicy func(snapshot []*Order, pending []StatusChange) []*Order

// PreferPending overlays every unacknowledged change on top of the snapshot, so a
// staff member never sees their own toggle flicker back while the write is in flight.
// Changes for orders missing from the snapshot are dropped with them. Once the store
// answers, the view removes the change and the snapshot value shows through again.
func PreferPending(snapshot []*Order, pending []StatusChange) []*Order {
	out := make([]*Order, len(snapshot))
	copy(out, snapshot)
	if len(pending) == 0 {
		return out
	}

	index := make(map[string]int, len(out))
	for i, o := range out {
		index[o.ID().String()] = i
	}

	cloned := make(map[int]bool)
	for _, change := range pending {
		i, ok := index[change.OrderID().String()]
		if !ok {
			continue
		}
		if !cloned[i] {
			out[i] = out[i].Clone()
			cloned[i] = true
		}
		_ = out[i].Apply(change)
	}
	return out
}

// PreferSnapshot ignores pending changes: whatever the store last delivered wins.
func PreferSnapshot(snapshot []*Order, _ []StatusChange) []*Order {
	out := make([]*Order, len(snapshot))
	copy(out, snapshot)
	return out
}

// SortByCreatedDesc orders newest first. Orders created at the same instant are
// ordered by descending ID so the result is deterministic.
func SortByCreatedDesc(orders []*Order) {
	slices.SortStableFunc(orders, func(a, b *Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return b.ID().Compare(a.ID())
	})
}
