package events

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"
)

var _ ports.OrderStore = (*PublishingStore)(nil)

// PublishingStore decorates an OrderStore and publishes an event after every successful
// write. A failed publish is logged and never turns a successful write into an error.
type PublishingStore struct {
	ports.OrderStore
	publisher ports.OrderEventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewPublishingStore(
	store ports.OrderStore,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) *PublishingStore {
	return &PublishingStore{
		OrderStore: store,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "PublishingStore"),
	}
}

func (s *PublishingStore) Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error) {
	id, err := s.OrderStore.Create(ctx, draft)
	if err != nil {
		return id, err
	}
	s.publish(ctx, ports.OrderEvent{Kind: ports.OrderCreated, OrderIDs: []string{id.String()}})
	return id, nil
}

func (s *PublishingStore) UpdateStatus(ctx context.Context, change order.StatusChange) error {
	if err := s.OrderStore.UpdateStatus(ctx, change); err != nil {
		return err
	}
	s.publish(ctx, ports.OrderEvent{
		Kind:     ports.OrderStatusChanged,
		OrderIDs: []string{change.OrderID().String()},
		Field:    change.Field().String(),
		Value:    change.Value(),
	})
	return nil
}

func (s *PublishingStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := s.OrderStore.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, ports.OrderEvent{Kind: ports.OrderDeleted, OrderIDs: []string{id.String()}})
	return nil
}

func (s *PublishingStore) DeleteAll(ctx context.Context, ids []kernel.UUID) error {
	if err := s.OrderStore.DeleteAll(ctx, ids); err != nil {
		return err
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	s.publish(ctx, ports.OrderEvent{Kind: ports.OrdersCleared, OrderIDs: raw})
	return nil
}

func (s *PublishingStore) publish(ctx context.Context, event ports.OrderEvent) {
	event.OccurredAt = s.clock.Now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order event", "kind", event.Kind, "error", err)
	}
}
