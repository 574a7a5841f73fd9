package views

import (
	"slices"
	"sync"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
)

// OrderSet is the process-local copy of the order collection held by one view. It keeps
// two layers: the last snapshot confirmed by the store and the status changes staged
// locally but not yet acknowledged. What the view shows is policy(base, pending).
//
// OrderSet is safe for concurrent use. Every order it returns is a copy.
type OrderSet struct {
	mu      sync.RWMutex
	base    []*order.Order
	pending []order.StatusChange
	policy  order.ReconcilePolicy
	calc    services.StatisticsCalculator
}

// NewOrderSet returns an empty set. A nil policy means order.PreferPending.
func NewOrderSet(policy order.ReconcilePolicy) *OrderSet {
	if policy == nil {
		policy = order.PreferPending
	}
	return &OrderSet{
		policy: policy,
		calc:   services.NewStatisticsCalculator(),
	}
}

// Replace swaps the confirmed layer for snapshot. Pending changes survive and are
// overlaid again according to the policy.
func (s *OrderSet) Replace(snapshot []*order.Order) {
	base := make([]*order.Order, 0, len(snapshot))
	for _, o := range snapshot {
		if o != nil {
			base = append(base, o.Clone())
		}
	}
	order.SortByCreatedDesc(base)

	s.mu.Lock()
	s.base = base
	s.mu.Unlock()
}

// Orders returns the visible orders, newest first.
func (s *OrderSet) Orders() []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible()
}

// Find returns the visible state of the order with id.
func (s *OrderSet) Find(id kernel.UUID) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.visible() {
		if o.ID().IsEqual(id) {
			return o, true
		}
	}
	return nil, false
}

// Len returns the number of visible orders.
func (s *OrderSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.policy(s.base, s.pending))
}

// Statistics derives the counters from the visible orders.
func (s *OrderSet) Statistics() services.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calc.Compute(s.policy(s.base, s.pending))
}

// Stage records change as issued but not yet acknowledged by the store.
func (s *OrderSet) Stage(change order.StatusChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, change)
}

// Confirm is called once the store acknowledged change: it leaves the pending layer and
// becomes part of the confirmed snapshot.
func (s *OrderSet) Confirm(change order.StatusChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropPending(change)
	for i, o := range s.base {
		if o.ID().IsEqual(change.OrderID()) {
			patched := o.Clone()
			if err := patched.Apply(change); err == nil {
				s.base[i] = patched
			}
			return
		}
	}
}

// Revert is called when the store rejected change: it is discarded, so the view falls
// back to the last confirmed value.
func (s *OrderSet) Revert(change order.StatusChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropPending(change)
}

// Remove drops the order with id from both layers.
func (s *OrderSet) Remove(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.base = slices.DeleteFunc(s.base, func(o *order.Order) bool { return o.ID().IsEqual(id) })
	s.pending = slices.DeleteFunc(s.pending, func(c order.StatusChange) bool { return c.OrderID().IsEqual(id) })
}

// Clear empties the set.
func (s *OrderSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = nil
	s.pending = nil
}

// PendingChanges returns the changes still waiting for the store, in issue order.
func (s *OrderSet) PendingChanges() []order.StatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pending)
}

func (s *OrderSet) visible() []*order.Order {
	reconciled := s.policy(s.base, s.pending)
	out := make([]*order.Order, len(reconciled))
	for i, o := range reconciled {
		out[i] = o.Clone()
	}
	return out
}

func (s *OrderSet) dropPending(change order.StatusChange) {
	if i := slices.IndexFunc(s.pending, change.IsEqual); i >= 0 {
		s.pending = slices.Delete(s.pending, i, i+1)
	}
}
