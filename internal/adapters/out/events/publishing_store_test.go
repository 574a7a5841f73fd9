package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/events"
	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var now = time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

func newStore(publisher ports.OrderEventPublisher) *events.PublishingStore {
	return events.NewPublishingStore(memory.NewOrderStore(), publisher, clock.NewFixed(now),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newDraft(t *testing.T) *order.Draft {
	t.Helper()
	eggs := 1
	d, err := order.NewDraft(order.NewOrderInput{CustomerName: "Ana", EggBoxes: &eggs}, order.DefaultCatalog())
	require.NoError(t, err)
	return d
}

func TestPublishingStore_PublishesAfterWrites(t *testing.T) {
	ctx := t.Context()
	publisher := new(MockPublisher)
	store := newStore(publisher)

	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.OrderCreated && e.OccurredAt.Equal(now)
	})).Return(nil).Once()
	id, err := store.Create(ctx, newDraft(t))
	require.NoError(t, err)

	change, err := order.NewPaidChange(id, true, now)
	require.NoError(t, err)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.OrderStatusChanged && e.Field == "paid" && e.Value == true &&
			e.OrderIDs[0] == id.String()
	})).Return(nil).Once()
	require.NoError(t, store.UpdateStatus(ctx, change))

	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.OrderDeleted
	})).Return(nil).Once()
	require.NoError(t, store.Delete(ctx, id))

	publisher.AssertExpectations(t)
}

func TestPublishingStore_NoEventOnFailedWrite(t *testing.T) {
	publisher := new(MockPublisher)
	store := newStore(publisher)

	err := store.Delete(t.Context(), kernel.NewUUID())

	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublishingStore_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := t.Context()
	publisher := new(MockPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))
	store := newStore(publisher)

	id, err := store.Create(ctx, newDraft(t))
	require.NoError(t, err)

	require.NoError(t, store.DeleteAll(ctx, []kernel.UUID{id}))
	orders, err := store.ListByCreatedDesc(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
