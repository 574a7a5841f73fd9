package http

import (
	"log/slog"
	"net/http"
	"strings"

	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Sessions is the staff access guard as seen by the transport.
type Sessions interface {
	ports.AccessGuard
	SignIn(email, password string) (string, ports.Identity, error)
	SignOut(token string) error
	Authenticate(token string) (ports.Identity, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler     commands.SubmitOrderCommandHandler
	toggleDeliveryHandler  commands.ToggleDeliveryCommandHandler
	togglePaidHandler      commands.TogglePaidCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler
	deleteAllOrdersHandler commands.DeleteAllOrdersCommandHandler

	// Query handlers
	getManagementViewHandler queries.GetManagementViewQueryHandler

	management *views.OrderSet
	monitor    *views.PushSynchronizer
	sessions   Sessions
	logger     *slog.Logger
}

// NewServer creates a new HTTP server. management is the order set the command handlers
// mutate; toggles answer with the order as it is visible there.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	toggleDeliveryHandler commands.ToggleDeliveryCommandHandler,
	togglePaidHandler commands.TogglePaidCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	deleteAllOrdersHandler commands.DeleteAllOrdersCommandHandler,
	getManagementViewHandler queries.GetManagementViewQueryHandler,
	management *views.OrderSet,
	monitor *views.PushSynchronizer,
	sessions Sessions,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrderHandler:       submitOrderHandler,
		toggleDeliveryHandler:    toggleDeliveryHandler,
		togglePaidHandler:        togglePaidHandler,
		deleteOrderHandler:       deleteOrderHandler,
		deleteAllOrdersHandler:   deleteAllOrdersHandler,
		getManagementViewHandler: getManagementViewHandler,
		management:               management,
		monitor:                  monitor,
		sessions:                 sessions,
		logger:                   logger.With("component", "HTTPServer"),
	}
}

// SubmitOrder handles POST /api/v1/orders - stores a customer order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var body servers.SubmitOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	input := order.NewOrderInput{
		CustomerName: body.CustomerName,
		EggBoxes:     body.EggBoxes,
		OilCans:      body.OilCans,
	}
	if body.Phone != nil {
		input.Phone = *body.Phone
	}

	id, err := s.submitOrderHandler.Handle(ctx.Request().Context(), commands.NewSubmitOrderCommand(input))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: id.Bytes()})
}

// GetOrders handles GET /api/v1/orders - the staff management view.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	refresh := params.Refresh == nil || *params.Refresh

	view, err := s.getManagementViewHandler.Handle(ctx.Request().Context(), queries.NewGetManagementViewQuery(refresh))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.ManagementView{
		Orders:         toOrders(view.Orders),
		Statistics:     toStatistics(view.Statistics),
		PendingChanges: view.PendingChanges,
	})
}

// ToggleDelivery handles POST /api/v1/orders/{id}/toggle-delivery.
func (s *Server) ToggleDelivery(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewToggleDeliveryCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.toggleDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.visibleOrder(ctx, orderID)
}

// TogglePaid handles POST /api/v1/orders/{id}/toggle-paid.
func (s *Server) TogglePaid(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTogglePaidCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.togglePaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.visibleOrder(ctx, orderID)
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id servers.OrderID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrders handles DELETE /api/v1/orders - removes every order at once.
func (s *Server) DeleteOrders(ctx echo.Context) error {
	deleted, err := s.deleteAllOrdersHandler.Handle(ctx.Request().Context(), commands.NewDeleteAllOrdersCommand())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.DeletedOrders{Deleted: deleted})
}

// Login handles POST /api/v1/login.
func (s *Server) Login(ctx echo.Context) error {
	var body servers.LoginJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.fail(ctx, err)
	}

	token, identity, err := s.sessions.SignIn(body.Email, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}
	s.logger.InfoContext(ctx.Request().Context(), "staff signed in", "subject", identity.Subject)
	return ctx.JSON(http.StatusOK, servers.Session{Token: token, Email: identity.Email})
}

// Logout handles POST /api/v1/logout. Open monitor connections of the identity are
// closed by the auth change listener.
func (s *Server) Logout(ctx echo.Context) error {
	token, _ := ctx.Get(tokenContextKey).(string)
	if strings.TrimSpace(token) == "" {
		return s.fail(ctx, auth.ErrUnauthenticated)
	}
	if err := s.sessions.SignOut(token); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) visibleOrder(ctx echo.Context, id kernel.UUID) error {
	o, ok := s.management.Find(id)
	if !ok {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}
