package orderrepo_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderStoreIntegrationTestSuite runs GormOrderStore against a real PostgreSQL container.
type OrderStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	store     *orderrepo.GormOrderStore
}

func (suite *OrderStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.Migrate(ctx, db))
}

func (suite *OrderStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.store = orderrepo.NewGormOrderStore(suite.db, suite.dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (suite *OrderStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderStoreIntegrationTestSuite) TestCreate_AssignsIDAndCreationTime() {
	ctx := context.Background()

	id, err := suite.store.Create(ctx, suite.draft("Ana", intPtr(2), nil))
	suite.Require().NoError(err)
	suite.Require().NoError(id.Validate())

	orders, err := suite.store.ListByCreatedDesc(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)

	o := orders[0]
	suite.True(o.ID().IsEqual(id))
	suite.Equal("Ana", o.CustomerName())
	suite.Equal(order.PhoneNotProvided, o.Phone())
	suite.Equal(order.Pending, o.DeliveryState())
	suite.False(o.IsPaid())
	suite.False(o.CreatedAt().IsZero())

	eggs, ok := o.Line(order.Eggs)
	suite.Require().True(ok)
	suite.Equal(2, eggs.Quantity())
	suite.Equal(40, eggs.DerivedUnits())
	suite.Equal("4", eggs.LineTotal().String())
	_, ok = o.Line(order.Oil)
	suite.False(ok)
}

func (suite *OrderStoreIntegrationTestSuite) TestListByCreatedDesc_NewestFirst() {
	ctx := context.Background()

	first, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
	suite.Require().NoError(err)
	second, err := suite.store.Create(ctx, suite.draft("B", nil, intPtr(1)))
	suite.Require().NoError(err)
	third, err := suite.store.Create(ctx, suite.draft("C", intPtr(1), intPtr(1)))
	suite.Require().NoError(err)

	orders, err := suite.store.ListByCreatedDesc(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)
	suite.True(orders[0].ID().IsEqual(third))
	suite.True(orders[1].ID().IsEqual(second))
	suite.True(orders[2].ID().IsEqual(first))
}

func (suite *OrderStoreIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	id, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
	suite.Require().NoError(err)

	suite.Run("delivery state", func() {
		change, err := order.NewDeliveryStateChange(id, order.Delivered, time.Now())
		suite.Require().NoError(err)

		suite.Require().NoError(suite.store.UpdateStatus(ctx, change))

		orders, err := suite.store.ListByCreatedDesc(ctx)
		suite.Require().NoError(err)
		suite.Equal(order.Delivered, orders[0].DeliveryState())
		suite.False(orders[0].IsPaid())
	})

	suite.Run("paid", func() {
		change, err := order.NewPaidChange(id, true, time.Now())
		suite.Require().NoError(err)

		suite.Require().NoError(suite.store.UpdateStatus(ctx, change))

		orders, err := suite.store.ListByCreatedDesc(ctx)
		suite.Require().NoError(err)
		suite.True(orders[0].IsPaid())
		suite.Equal(order.Delivered, orders[0].DeliveryState())
	})

	suite.Run("unknown order", func() {
		change, err := order.NewPaidChange(kernel.NewUUID(), true, time.Now())
		suite.Require().NoError(err)

		err = suite.store.UpdateStatus(ctx, change)

		suite.ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (suite *OrderStoreIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	id, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.Delete(ctx, id))
	suite.assertOrderCount(0)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(suite.store.Delete(ctx, id), &notFound)
}

func (suite *OrderStoreIntegrationTestSuite) TestDeleteAll_RemovesEverything() {
	ctx := context.Background()
	var ids []kernel.UUID
	for range 4 {
		id, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
		suite.Require().NoError(err)
		ids = append(ids, id)
	}

	suite.Require().NoError(suite.store.DeleteAll(ctx, ids))

	suite.assertOrderCount(0)
}

func (suite *OrderStoreIntegrationTestSuite) TestDeleteAll_IsAtomic() {
	ctx := context.Background()
	var ids []kernel.UUID
	for range 3 {
		id, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
		suite.Require().NoError(err)
		ids = append(ids, id)
	}

	err := suite.store.DeleteAll(ctx, append(ids, kernel.NewUUID()))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrStoreWrite)
	suite.assertOrderCount(3)
}

func (suite *OrderStoreIntegrationTestSuite) TestWatch_DeliversSnapshotsOnChange() {
	ctx := context.Background()

	var mu sync.Mutex
	var last []*order.Order
	deliveries := 0
	watch, err := suite.store.Watch(ctx, func(orders []*order.Order) {
		mu.Lock()
		defer mu.Unlock()
		last = orders
		deliveries++
	})
	suite.Require().NoError(err)
	defer watch.Stop()

	suite.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return deliveries >= 1
	}, 5*time.Second, 20*time.Millisecond)

	a, err := suite.store.Create(ctx, suite.draft("A", intPtr(1), nil))
	suite.Require().NoError(err)
	b, err := suite.store.Create(ctx, suite.draft("B", intPtr(2), nil))
	suite.Require().NoError(err)
	change, err := order.NewDeliveryStateChange(a, order.Delivered, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.UpdateStatus(ctx, change))

	suite.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last) == 2 &&
			last[0].ID().IsEqual(b) &&
			last[1].ID().IsEqual(a) &&
			last[1].DeliveryState() == order.Delivered
	}, 5*time.Second, 20*time.Millisecond)

	watch.Stop()
	select {
	case <-watch.Done():
	case <-time.After(5 * time.Second):
		suite.Fail("watch did not stop")
	}
	suite.NoError(watch.Err())
}

func (suite *OrderStoreIntegrationTestSuite) draft(name string, eggs, oil *int) *order.Draft {
	d, err := order.NewDraft(order.NewOrderInput{CustomerName: name, EggBoxes: eggs, OilCans: oil}, order.DefaultCatalog())
	suite.Require().NoError(err)
	return d
}

func (suite *OrderStoreIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func intPtr(v int) *int { return &v }

func TestOrderStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderStoreIntegrationTestSuite))
}
