// Package views keeps the staff views in sync with the order store.
//
// The management view uses PullSynchronizer: it reads a snapshot on activation and on
// demand, and status mutations patch its OrderSet optimistically. The monitor view uses
// PushSynchronizer: it holds a standing watch and replaces its set on every change.
//
// Example usage:
//
//	sub, err := push.Subscribe(ctx, func(s views.Snapshot) {
//	    render(s.Orders, s.Statistics)
//	})
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
package views
