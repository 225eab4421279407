package server

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/b2bnews/pkg/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// stackSize is the maximum stack trace size logged for panics.
const stackSize = 4096

// RequestID keeps an incoming X-Request-ID or generates one, stores it in the request
// context for the logger and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// RequestLogger logs one line per request.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseWriter(w)
			next.ServeHTTP(rw, r)

			level := slog.LevelInfo
			switch {
			case rw.Status() >= 500:
				level = slog.LevelError
			case rw.Status() >= 400:
				level = slog.LevelWarn
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover turns handler panics into a *PanicError for the error handler.
func Recover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c *Context) (err error) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					stack := make([]byte, stackSize)
					stack = stack[:runtime.Stack(stack, false)]
					c.Logger().ErrorContext(c.Context(), "panic recovered",
						slog.Any("panic", v),
						slog.String("stack", string(stack)),
					)
					err = &PanicError{Value: v, Stack: stack}
				}
			}()
			return next(c)
		}
	}
}

// FromHTTP adapts a net/http middleware. When mw does not call the next handler, its
// own response stands and the chain stops.
func FromHTTP(mw func(http.Handler) http.Handler) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c *Context) error {
			var err error
			mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				c.r = r
				err = next(c)
			})).ServeHTTP(c.w, c.r)
			return err
		}
	}
}
