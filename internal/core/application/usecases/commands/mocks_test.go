package commands_test

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockOrderStore) ListByCreatedDesc(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderStore) Watch(ctx context.Context, onChange func([]*order.Order)) (ports.Watch, error) {
	args := m.Called(ctx, onChange)
	w, _ := args.Get(0).(ports.Watch)
	return w, args.Error(1)
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockOrderStore) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderStore) DeleteAll(ctx context.Context, ids []kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockLocalOrders struct{ mock.Mock }

func (m *MockLocalOrders) Find(id kernel.UUID) (*order.Order, bool) {
	args := m.Called(id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1)
}

func (m *MockLocalOrders) Stage(change order.StatusChange)   { m.Called(change) }
func (m *MockLocalOrders) Confirm(change order.StatusChange) { m.Called(change) }
func (m *MockLocalOrders) Revert(change order.StatusChange)  { m.Called(change) }
func (m *MockLocalOrders) Remove(id kernel.UUID)             { m.Called(id) }
func (m *MockLocalOrders) Clear()                            { m.Called() }
