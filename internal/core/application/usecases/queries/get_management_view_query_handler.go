package queries

import (
	"context"

	"orderdesk/internal/core/application/views"
)

type GetManagementViewQueryHandler struct {
	pull *views.PullSynchronizer
}

func NewGetManagementViewQueryHandler(pull *views.PullSynchronizer) GetManagementViewQueryHandler {
	return GetManagementViewQueryHandler{pull: pull}
}

// Handle returns the current management view. A failed refresh leaves the view
// untouched and returns the store error.
func (h GetManagementViewQueryHandler) Handle(
	ctx context.Context,
	query GetManagementViewQuery,
) (GetManagementViewResponse, error) {
	if err := query.Validate(); err != nil {
		return GetManagementViewResponse{}, err
	}

	set := h.pull.Set()
	if query.Refresh() {
		if _, err := h.pull.Refresh(ctx); err != nil {
			return GetManagementViewResponse{}, err
		}
	}

	return GetManagementViewResponse{
		Orders:         set.Orders(),
		Statistics:     set.Statistics(),
		PendingChanges: len(set.PendingChanges()),
	}, nil
}
