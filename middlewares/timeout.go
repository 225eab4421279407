package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/b2bnews/internal/server"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout gives every request context a deadline. A handler that fails with the
// deadline exceeded, or returns after it without writing, gets 503.
//
// Handlers are not interrupted; they see the deadline through c.Context().
func Timeout(timeout time.Duration) server.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next server.HandlerFunc) server.HandlerFunc {
		return func(c *server.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if c.Written() {
				return err
			}
			if errors.Is(err, context.DeadlineExceeded) || (err == nil && errors.Is(ctx.Err(), context.DeadlineExceeded)) {
				c.Logger().WarnContext(ctx, "request timeout", slog.Duration("timeout", timeout))
				return server.NewHTTPError(http.StatusServiceUnavailable, "request timeout", server.WithError(context.DeadlineExceeded))
			}
			return err
		}
	}
}
