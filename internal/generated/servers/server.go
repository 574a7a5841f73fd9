// Package servers provides primitives to interact with the openapi HTTP API.
//
// The layout follows what oapi-codegen emits for the echo server target
// (-generate types,server,spec) from api/openapi.yaml; keep the two in sync.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"orderdesk/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for OrderDeliveryState.
const (
	OrderDeliveryStateDelivered OrderDeliveryState = "delivered"
	OrderDeliveryStatePending   OrderDeliveryState = "pending"
)

// Credentials defines model for Credentials.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DeletedOrders defines model for DeletedOrders.
type DeletedOrders struct {
	Deleted int `json:"deleted"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ManagementView defines model for ManagementView.
type ManagementView struct {
	Orders []Order `json:"orders"`

	// PendingChanges Status changes sent to the store and not yet acknowledged
	PendingChanges int        `json:"pendingChanges"`
	Statistics     Statistics `json:"statistics"`
}

// MonitorMessage defines model for MonitorMessage.
type MonitorMessage struct {
	Orders     []Order    `json:"orders"`
	Statistics Statistics `json:"statistics"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerName string  `json:"customerName" validate:"required,max=120"`
	EggBoxes     *int    `json:"eggBoxes,omitempty" validate:"omitempty,max=1000"`
	OilCans      *int    `json:"oilCans,omitempty" validate:"omitempty,max=1000"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time          `json:"createdAt"`
	CustomerName  string             `json:"customerName"`
	DeliveryState OrderDeliveryState `json:"deliveryState"`
	Eggs          *OrderLine         `json:"eggs,omitempty"`
	Id            openapi_types.UUID `json:"id"`
	Oil           *OrderLine         `json:"oil,omitempty"`
	Paid          bool               `json:"paid"`
	Phone         string             `json:"phone"`
	Total         float64            `json:"total"`
}

// OrderDeliveryState defines model for Order.DeliveryState.
type OrderDeliveryState string

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	Id openapi_types.UUID `json:"id"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	LineTotal float64 `json:"lineTotal"`
	Quantity  int     `json:"quantity"`

	// Units Eggs for the egg line, liters for the oil line
	Units int `json:"units"`
}

// Session defines model for Session.
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Statistics defines model for Statistics.
type Statistics struct {
	DeliveredCount  int `json:"deliveredCount"`
	PendingCount    int `json:"pendingCount"`
	PendingEggBoxes int `json:"pendingEggBoxes"`
	PendingOilCans  int `json:"pendingOilCans"`
	TotalCount      int `json:"totalCount"`
}

// OrderID defines model for OrderID.
type OrderID = openapi_types.UUID

// GetMonitorParams defines parameters for GetMonitor.
type GetMonitorParams struct {
	AccessToken *string `form:"access_token,omitempty" json:"access_token,omitempty"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	// Refresh Re-read the order store before answering. With false the local view is returned, including status changes still in flight.
	Refresh *bool `form:"refresh,omitempty" json:"refresh,omitempty"`
}

// LoginJSONRequestBody defines body for Login for application/json ContentType.
type LoginJSONRequestBody = Credentials

// SubmitOrderJSONRequestBody defines body for SubmitOrder for application/json ContentType.
type SubmitOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Staff sign-in
	// (POST /api/v1/login)
	Login(ctx echo.Context) error
	// Staff sign-out
	// (POST /api/v1/logout)
	Logout(ctx echo.Context) error
	// Live order feed over a websocket
	// (GET /api/v1/monitor)
	GetMonitor(ctx echo.Context, params GetMonitorParams) error
	// Delete every order
	// (DELETE /api/v1/orders)
	DeleteOrders(ctx echo.Context) error
	// Management view, newest first
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// Submit a new order
	// (POST /api/v1/orders)
	SubmitOrder(ctx echo.Context) error
	// Delete one order
	// (DELETE /api/v1/orders/{id})
	DeleteOrder(ctx echo.Context, id OrderID) error
	// Flip pending and delivered
	// (POST /api/v1/orders/{id}/toggle-delivery)
	ToggleDelivery(ctx echo.Context, id OrderID) error
	// Flip the paid flag
	// (POST /api/v1/orders/{id}/toggle-paid)
	TogglePaid(ctx echo.Context, id OrderID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Login converts echo context to params.
func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.Login(ctx)
	return err
}

// Logout converts echo context to params.
func (w *ServerInterfaceWrapper) Logout(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.Logout(ctx)
	return err
}

// GetMonitor converts echo context to params.
func (w *ServerInterfaceWrapper) GetMonitor(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Parameter object where we will unmarshal all parameters from the context
	var params GetMonitorParams
	// ------------- Optional query parameter "access_token" -------------

	err = runtime.BindQueryParameter("form", true, false, "access_token", ctx.QueryParams(), &params.AccessToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter access_token: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetMonitor(ctx, params)
	return err
}

// DeleteOrders converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrders(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeleteOrders(ctx)
	return err
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	// Parameter object where we will unmarshal all parameters from the context
	var params GetOrdersParams
	// ------------- Optional query parameter "refresh" -------------

	err = runtime.BindQueryParameter("form", true, false, "refresh", ctx.QueryParams(), &params.Refresh)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter refresh: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrders(ctx, params)
	return err
}

// SubmitOrder converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitOrder(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SubmitOrder(ctx)
	return err
}

// DeleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id OrderID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.DeleteOrder(ctx, id)
	return err
}

// ToggleDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) ToggleDelivery(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id OrderID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ToggleDelivery(ctx, id)
	return err
}

// TogglePaid converts echo context to params.
func (w *ServerInterfaceWrapper) TogglePaid(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id OrderID

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	ctx.Set(BearerAuthScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.TogglePaid(ctx, id)
	return err
}

// EchoRouter is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so
// that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/login", wrapper.Login)
	router.POST(baseURL+"/api/v1/logout", wrapper.Logout)
	router.GET(baseURL+"/api/v1/monitor", wrapper.GetMonitor)
	router.DELETE(baseURL+"/api/v1/orders", wrapper.DeleteOrders)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.SubmitOrder)
	router.DELETE(baseURL+"/api/v1/orders/:id", wrapper.DeleteOrder)
	router.POST(baseURL+"/api/v1/orders/:id/toggle-delivery", wrapper.ToggleDelivery)
	router.POST(baseURL+"/api/v1/orders/:id/toggle-paid", wrapper.TogglePaid)
}

// GetSwagger returns the parsed OpenAPI contract.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
