package http

import (
	"log/slog"
	"net/http"
	"strings"

	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/generated/servers"
	"orderdesk/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const tokenContextKey = "orderdesk.token"

// publicRoutes are the API routes reachable without a staff token, keyed by method and
// route pattern.
var publicRoutes = map[string]bool{
	http.MethodPost + " /api/v1/orders": true,
	http.MethodPost + " /api/v1/login":  true,
}

// monitorRoute may carry its token in the access_token query parameter because browsers
// cannot set headers on websocket handshakes.
const monitorRoute = "/api/v1/monitor"

// AuthMiddleware admits staff routes only with a valid bearer token. Everything outside
// /api/ and the routes in publicRoutes stay open.
func AuthMiddleware(sessions Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/") || publicRoutes[req.Method+" "+c.Path()] {
				return next(c)
			}

			token := bearerToken(req)
			if token == "" && c.Path() == monitorRoute {
				token = c.QueryParam("access_token")
			}
			identity, err := sessions.Authenticate(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, servers.Error{Code: http.StatusUnauthorized, Message: "Unauthorized"})
			}

			c.Set(tokenContextKey, token)
			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// OpenAPIValidator checks requests against the API contract. Requests for routes the
// contract does not describe pass through untouched.
func OpenAPIValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Match paths regardless of the host the service runs behind.
	swagger.Servers = nil
	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	if re, ok := err.(*openapi3filter.RequestError); ok {
		return re.Error()
	}
	return "Request does not match the API contract"
}

// RequestValidator plugs go-playground/validator into echo.Context.Validate. Violations
// come back as validation errors so handlers map them to 400.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	return nil
}

// RequestLogger writes one structured line per request. Only the path is logged; the
// query may carry an access token.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "HTTP")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
