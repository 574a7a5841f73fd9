package commands_test

import (
	"errors"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/clock"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	draft, err := order.NewDraft(order.NewOrderInput{CustomerName: "Ana", EggBoxes: intPtr(2)}, order.DefaultCatalog())
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), issuedAt.Add(-time.Hour), draft)
	require.NoError(t, err)
	return o
}

func TestToggleDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewToggleDeliveryCommand(current.ID())
	require.NoError(t, err)

	expected, err := order.NewDeliveryStateChange(current.ID(), order.Delivered, issuedAt)
	require.NoError(t, err)

	orders := new(MockLocalOrders)
	store := new(MockOrderStore)
	mock.InOrder(
		orders.On("Find", current.ID()).Return(current, true).Once(),
		orders.On("Stage", expected).Once(),
		store.On("UpdateStatus", ctx, expected).Return(nil).Once(),
		orders.On("Confirm", expected).Once(),
	)

	h := commands.NewToggleDeliveryCommandHandler(orders, store, clock.NewFixed(issuedAt))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	orders.AssertExpectations(t)
	store.AssertExpectations(t)
	orders.AssertNotCalled(t, "Revert", mock.Anything)
}

func TestToggleDeliveryCommandHandler_Handle_StoreErrorReverts(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewToggleDeliveryCommand(current.ID())
	require.NoError(t, err)

	expected, err := order.NewDeliveryStateChange(current.ID(), order.Delivered, issuedAt)
	require.NoError(t, err)

	orders := new(MockLocalOrders)
	store := new(MockOrderStore)
	mock.InOrder(
		orders.On("Find", current.ID()).Return(current, true).Once(),
		orders.On("Stage", expected).Once(),
		store.On("UpdateStatus", ctx, expected).Return(errors.New("unavailable")).Once(),
		orders.On("Revert", expected).Once(),
	)

	h := commands.NewToggleDeliveryCommandHandler(orders, store, clock.NewFixed(issuedAt))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStoreWrite)
	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestToggleDeliveryCommandHandler_Handle_UnknownOrder(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewToggleDeliveryCommand(id)
	require.NoError(t, err)

	orders := new(MockLocalOrders)
	orders.On("Find", id).Return(nil, false).Once()
	store := new(MockOrderStore)

	h := commands.NewToggleDeliveryCommandHandler(orders, store, clock.NewSystem())
	err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestToggleDeliveryCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewToggleDeliveryCommandHandler(new(MockLocalOrders), new(MockOrderStore), clock.NewSystem())

	err := h.Handle(t.Context(), commands.ToggleDeliveryCommand{})

	assert.ErrorIs(t, err, commands.ErrToggleDeliveryCommandIsNotConstructed)
}

func TestNewToggleDeliveryCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewToggleDeliveryCommand(kernel.UUID{})

	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestTogglePaidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewTogglePaidCommand(current.ID())
	require.NoError(t, err)

	expected, err := order.NewPaidChange(current.ID(), true, issuedAt)
	require.NoError(t, err)

	orders := new(MockLocalOrders)
	store := new(MockOrderStore)
	mock.InOrder(
		orders.On("Find", current.ID()).Return(current, true).Once(),
		orders.On("Stage", expected).Once(),
		store.On("UpdateStatus", ctx, expected).Return(nil).Once(),
		orders.On("Confirm", expected).Once(),
	)

	h := commands.NewTogglePaidCommandHandler(orders, store, clock.NewFixed(issuedAt))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	orders.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestTogglePaidCommandHandler_Handle_NotFoundInStoreReverts(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewTogglePaidCommand(current.ID())
	require.NoError(t, err)

	orders := new(MockLocalOrders)
	orders.On("Find", current.ID()).Return(current, true).Once()
	orders.On("Stage", mock.AnythingOfType("order.StatusChange")).Once()
	orders.On("Revert", mock.AnythingOfType("order.StatusChange")).Once()
	store := new(MockOrderStore)
	store.On("UpdateStatus", ctx, mock.AnythingOfType("order.StatusChange")).
		Return(errs.NewObjectNotFoundError("order", current.ID().String())).Once()

	h := commands.NewTogglePaidCommandHandler(orders, store, clock.NewFixed(issuedAt))
	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotErrorIs(t, err, errs.ErrStoreWrite)
	orders.AssertExpectations(t)
}
