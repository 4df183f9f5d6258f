package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const streamKeepAlive = 15 * time.Second

// StreamActiveOrder handles GET /api/v1/orders/active/stream. It is a server-sent
// event stream with one "active-order" event per change, carrying the same body as
// GET /api/v1/orders/active.
func (s *Server) StreamActiveOrder(ctx echo.Context) error {
	identity := IdentityFrom(ctx)
	if err := identity.Require(); err != nil {
		return s.writeError(ctx, err, "Failed to watch active order")
	}

	updates, err := s.orders.WatchActiveOrder(ctx.Request().Context(), identity)
	if err != nil {
		return s.writeError(ctx, err, "Failed to watch active order")
	}

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case update, open := <-updates:
			if !open {
				return nil
			}
			data, err := json.Marshal(newActiveOrderDTO(update.Order, update.Found))
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(w, "event: active-order\ndata: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		case <-keepAlive.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
