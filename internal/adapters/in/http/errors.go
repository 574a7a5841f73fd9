package http

import (
	"context"
	"errors"
	"net/http"

	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/generated/servers"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the error taxonomy onto HTTP. A store write that failed because an order
// vanished is still a store failure, so ErrStoreWrite is checked before not-found.
func statusOf(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrStoreWrite), errors.Is(err, errs.ErrStoreRead):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed", "path", ctx.Path(), "error", err)
		message = "Internal server error"
	case http.StatusServiceUnavailable:
		s.logger.WarnContext(ctx.Request().Context(), "order store unavailable", "path", ctx.Path(), "error", err)
		message = "Order store is unavailable, try again"
	case http.StatusUnauthorized:
		message = "Unauthorized"
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

// errorHandler renders errors that never reached a Server method (unknown routes,
// malformed parameters, panics) in the same shape as handler errors.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			e.Logger.Error(err)
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(status)
		} else {
			err = ctx.JSON(status, servers.Error{Code: status, Message: message})
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
