package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/guard"
)

var ErrGetManagementViewQueryIsNotConstructed = errors.New(
	"GetManagementViewQuery must be created via NewGetManagementViewQuery constructor",
)

// GetManagementViewQuery reads the staff management view. With refresh set, the view is
// re-synchronized from the store first; otherwise the local set is returned as is,
// including optimistic changes still in flight.
//
// Example:
//
//	query := NewGetManagementViewQuery(true)
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to refresh orders: %w", err)
//	}
//	fmt.Printf("%d orders, %d pending\n", len(view.Orders), view.Statistics.PendingCount)
type GetManagementViewQuery struct {
	refresh bool

	guard guard.ConstructorGuard
}

func NewGetManagementViewQuery(refresh bool) GetManagementViewQuery {
	return GetManagementViewQuery{refresh: refresh, guard: guard.NewConstructorGuard()}
}

func (q GetManagementViewQuery) Validate() error {
	return q.guard.Validate(ErrGetManagementViewQueryIsNotConstructed)
}

func (q GetManagementViewQuery) Refresh() bool {
	return q.refresh
}

// GetManagementViewResponse is the management view: orders newest first and the counters
// derived from them.
type GetManagementViewResponse struct {
	Orders         []*order.Order
	Statistics     services.Statistics
	PendingChanges int
}
