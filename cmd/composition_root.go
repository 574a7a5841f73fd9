package cmd

import (
	"context"
	"log/slog"

	httpin "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/adapters/out/events"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/jobs"
	"orderdesk/internal/pkg/clock"

	"github.com/labstack/echo/v4"
)

// CompositionRoot owns the long-lived collaborators: the order store, the management
// view and the access guard. Handlers are created on demand around them.
type CompositionRoot struct {
	cfg     Config
	logger  *slog.Logger
	clock   clock.Clock
	catalog order.Catalog

	store      ports.OrderStore
	management *views.OrderSet
	pull       *views.PullSynchronizer
	push       *views.PushSynchronizer
	guard      *auth.TokenGuard

	closers []func()
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	clk := clock.NewMonotonic(clock.NewSystem())

	guard, err := auth.NewTokenGuard(auth.Config{
		Secret:            []byte(cfg.JWTSecret),
		TTL:               cfg.JWTTTL,
		StaffEmail:        cfg.StaffEmail,
		StaffPasswordHash: cfg.StaffPasswordHash,
	}, clk)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{cfg: cfg, logger: logger, clock: clk, catalog: catalog, guard: guard}

	store, closeStore, err := openOrderStore(ctx, cfg, clk, logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)

	publisher, err := c.openPublisher()
	if err != nil {
		c.Close()
		return nil, err
	}

	c.store = events.NewPublishingStore(store, publisher, clk, logger)
	c.management = views.NewOrderSet(order.PreferPending)
	c.pull = views.NewPullSynchronizer(c.store, c.management)
	c.push = views.NewPushSynchronizer(c.store, logger)
	return c, nil
}

func (c *CompositionRoot) openPublisher() (ports.OrderEventPublisher, error) {
	if c.cfg.AMQPURL == "" {
		return events.NopPublisher{}, nil
	}
	publisher, err := events.DialAMQP(c.cfg.AMQPURL, c.cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, func() { _ = publisher.Close() })
	return publisher, nil
}

// ActivateManagementView loads the management view from the store once.
func (c *CompositionRoot) ActivateManagementView(ctx context.Context) error {
	_, err := c.CreateGetManagementViewQueryHandler().Handle(ctx, queries.NewGetManagementViewQuery(true))
	return err
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.store, c.catalog)
}

func (c *CompositionRoot) CreateToggleDeliveryCommandHandler() commands.ToggleDeliveryCommandHandler {
	return commands.NewToggleDeliveryCommandHandler(c.management, c.store, c.clock)
}

func (c *CompositionRoot) CreateTogglePaidCommandHandler() commands.TogglePaidCommandHandler {
	return commands.NewTogglePaidCommandHandler(c.management, c.store, c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.management, c.store)
}

func (c *CompositionRoot) CreateDeleteAllOrdersCommandHandler() commands.DeleteAllOrdersCommandHandler {
	return commands.NewDeleteAllOrdersCommandHandler(c.management, c.store)
}

func (c *CompositionRoot) CreateGetManagementViewQueryHandler() queries.GetManagementViewQueryHandler {
	return queries.NewGetManagementViewQueryHandler(c.pull)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateToggleDeliveryCommandHandler(),
		c.CreateTogglePaidCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateDeleteAllOrdersCommandHandler(),
		c.CreateGetManagementViewQueryHandler(),
		c.management,
		c.push,
		c.guard,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewRouter(ctx, c.CreateServer(), c.guard, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetManagementViewQueryHandler(),
		c.cfg.RefreshSchedule,
		c.cfg.StatisticsSchedule,
		c.logger,
	)
}

// Close releases connections in reverse order of acquisition.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *CompositionRoot) StoreDriver() string {
	return c.cfg.StoreDriver
}
