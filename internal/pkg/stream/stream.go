// Package stream implements the lifecycle handle shared by every continuous watch on
// the order store: explicit start, idempotent stop, a done channel, and the error
// that ended delivery.
package stream

import (
	"context"
	"errors"
	"sync"

	"orderdesk/internal/pkg/errs"
)

// Producer runs a watch loop until ctx is cancelled or the transport fails.
// It must not deliver anything after ctx is done.
type Producer func(ctx context.Context) error

// Handle controls one running Producer.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Start runs producer in its own goroutine and returns its handle. Cancelling parent
// has the same effect as calling Stop.
func Start(parent context.Context, producer Producer) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		defer cancel()

		err := producer(ctx)
		if err == nil || ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}

		h.mu.Lock()
		h.err = errs.NewSubscriptionError(err)
		h.mu.Unlock()
	}()

	return h
}

// Stop releases the watch. It is safe to call more than once and from inside the
// delivery callback; it does not wait for the producer to exit (see Done).
func (h *Handle) Stop() {
	h.cancel()
}

// Done is closed once the producer has returned and no more snapshots will arrive.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the SubscriptionError that ended delivery, or nil when the watch is still
// running or was released by its owner.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
