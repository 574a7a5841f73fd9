package views_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, name string, eggs int, createdAt time.Time) *order.Order {
	t.Helper()
	draft, err := order.NewDraft(order.NewOrderInput{CustomerName: name, EggBoxes: &eggs}, order.DefaultCatalog())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), createdAt, draft)
	require.NoError(t, err)
	return o
}

func TestOrderSet_ReplaceSortsNewestFirst(t *testing.T) {
	now := time.Now()
	a := newOrder(t, "A", 1, now)
	b := newOrder(t, "B", 1, now.Add(time.Second))

	set := views.NewOrderSet(nil)
	set.Replace([]*order.Order{a, b})

	orders := set.Orders()
	require.Len(t, orders, 2)
	assert.True(t, orders[0].IsEqual(b))
	assert.True(t, orders[1].IsEqual(a))
}

func TestOrderSet_OptimisticChange(t *testing.T) {
	o := newOrder(t, "Ana", 2, time.Now())

	t.Run("should show a staged change before it is confirmed", func(t *testing.T) {
		// Given
		set := views.NewOrderSet(nil)
		set.Replace([]*order.Order{o})
		change, err := order.ToggleDeliveryOf(o, time.Now())
		require.NoError(t, err)

		// When
		set.Stage(change)

		// Then
		got, ok := set.Find(o.ID())
		require.True(t, ok)
		assert.Equal(t, order.Delivered, got.DeliveryState())
		assert.Equal(t, 0, set.Statistics().PendingEggBoxes)
	})

	t.Run("should keep a staged change over a stale snapshot", func(t *testing.T) {
		set := views.NewOrderSet(nil)
		set.Replace([]*order.Order{o})
		change, err := order.ToggleDeliveryOf(o, time.Now())
		require.NoError(t, err)
		set.Stage(change)

		set.Replace([]*order.Order{o})

		got, _ := set.Find(o.ID())
		assert.Equal(t, order.Delivered, got.DeliveryState())
	})

	t.Run("should keep the change after confirmation", func(t *testing.T) {
		set := views.NewOrderSet(nil)
		set.Replace([]*order.Order{o})
		change, err := order.TogglePaidOf(o, time.Now())
		require.NoError(t, err)
		set.Stage(change)

		set.Confirm(change)

		got, _ := set.Find(o.ID())
		assert.True(t, got.IsPaid())
		assert.Empty(t, set.PendingChanges())
		assert.False(t, o.IsPaid())
	})

	t.Run("should fall back to the store value after revert", func(t *testing.T) {
		set := views.NewOrderSet(nil)
		set.Replace([]*order.Order{o})
		change, err := order.TogglePaidOf(o, time.Now())
		require.NoError(t, err)
		set.Stage(change)

		set.Revert(change)

		got, _ := set.Find(o.ID())
		assert.False(t, got.IsPaid())
		assert.Empty(t, set.PendingChanges())
	})

	t.Run("should let the snapshot win with PreferSnapshot", func(t *testing.T) {
		set := views.NewOrderSet(order.PreferSnapshot)
		set.Replace([]*order.Order{o})
		change, err := order.TogglePaidOf(o, time.Now())
		require.NoError(t, err)

		set.Stage(change)

		got, _ := set.Find(o.ID())
		assert.False(t, got.IsPaid())
	})
}

func TestOrderSet_RemoveAndClear(t *testing.T) {
	a := newOrder(t, "A", 1, time.Now())
	b := newOrder(t, "B", 3, time.Now().Add(time.Second))
	set := views.NewOrderSet(nil)
	set.Replace([]*order.Order{a, b})
	change, err := order.TogglePaidOf(a, time.Now())
	require.NoError(t, err)
	set.Stage(change)

	set.Remove(a.ID())

	assert.Equal(t, 1, set.Len())
	assert.Empty(t, set.PendingChanges())
	_, ok := set.Find(a.ID())
	assert.False(t, ok)

	set.Clear()
	assert.Zero(t, set.Len())
	assert.Zero(t, set.Statistics().TotalCount)
}

func TestOrderSet_ReturnsCopies(t *testing.T) {
	o := newOrder(t, "A", 1, time.Now())
	set := views.NewOrderSet(nil)
	set.Replace([]*order.Order{o})

	got := set.Orders()
	got[0].TogglePaid()

	again, _ := set.Find(o.ID())
	assert.False(t, again.IsPaid())
}
