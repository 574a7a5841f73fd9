package http

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"orderdesk/internal/adapters/out/auth"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/generated/servers"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// GetMonitor handles GET /api/v1/monitor. The connection receives a MonitorMessage on
// open and after every store change until the client leaves, the staff member signs
// out or the order feed fails.
func (s *Server) GetMonitor(ctx echo.Context, _ servers.GetMonitorParams) error {
	identity, ok := s.sessions.CurrentUser(ctx.Request().Context())
	if !ok {
		return s.fail(ctx, auth.ErrUnauthenticated)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// The upgrader has already answered the client.
		return nil
	}
	defer conn.Close()

	watchCtx, cancel := context.WithCancel(ctx.Request().Context())
	defer cancel()

	var signedOut atomic.Bool
	unregister := s.sessions.OnAuthChange(func(previous ports.Identity, current *ports.Identity) {
		if current == nil && previous.Subject == identity.Subject {
			signedOut.Store(true)
			cancel()
		}
	})
	defer unregister()

	// Holds at most the latest snapshot; older ones are dropped if the client is slow.
	updates := make(chan views.Snapshot, 1)
	sub, err := s.monitor.Subscribe(watchCtx, func(snapshot views.Snapshot) {
		select {
		case <-updates:
		default:
		}
		updates <- snapshot
	})
	if err != nil {
		s.logger.WarnContext(watchCtx, "monitor subscription failed", "error", err)
		closeWith(conn, websocket.CloseTryAgainLater, "order feed unavailable")
		return nil
	}
	defer sub.Unsubscribe()

	go func() {
		// Reads only detect the client going away; monitor clients send nothing.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(toMonitorMessage(snapshot)); err != nil {
				return nil
			}
		case <-ticker.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-sub.Done():
			if err = sub.Err(); err != nil {
				s.logger.WarnContext(watchCtx, "monitor feed ended", "error", err)
				closeWith(conn, websocket.CloseTryAgainLater, "order feed unavailable")
				return nil
			}
			if signedOut.Load() {
				closeWith(conn, websocket.ClosePolicyViolation, "signed out")
			}
			return nil
		}
	}
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func toMonitorMessage(snapshot views.Snapshot) servers.MonitorMessage {
	return servers.MonitorMessage{
		Orders:     toOrders(snapshot.Orders),
		Statistics: toStatistics(snapshot.Statistics),
	}
}
