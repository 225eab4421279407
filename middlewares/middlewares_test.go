package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/middlewares"
)

type routes func(r server.Router)

func (fn routes) Routes(r server.Router) { fn(r) }

func newServer(opts ...server.Option) http.Handler {
	h := routes(func(r server.Router) {
		r.GET("/api/news", func(c *server.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
		})
		r.GET("/admin/me", func(c *server.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		r.GET("/slow", func(c *server.Context) error {
			<-c.Context().Done()
			return c.Context().Err()
		})
		r.GET("/deadline", func(c *server.Context) error {
			_, ok := c.Context().Deadline()
			if !ok {
				return server.ErrInternal("no deadline")
			}
			return c.NoContent(http.StatusNoContent)
		})
	})
	return server.New(append(opts, server.WithHandlers(h))...).Router()
}

func do(h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("default allows all origins", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS()))

		rec := do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://example.com"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("no headers without origin", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS()))

		rec := do(h, http.MethodGet, "/api/news", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered without a route", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS(middlewares.WithMaxAge(time.Hour))))

		rec := do(h, http.MethodOptions, "/api/news", map[string]string{
			"Origin":                        "http://example.com",
			"Access-Control-Request-Method": http.MethodGet,
		})
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, HEAD, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("specific origins are echoed", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS(
			middlewares.WithAllowOrigins("http://allowed.com"),
		)))

		rec := do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://allowed.com"})
		assert.Equal(t, "http://allowed.com", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://evil.com"})
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("credentials echo origin", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS(middlewares.WithAllowCredentials())))

		rec := do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://example.com"})
		assert.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("path prefixes", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS(middlewares.WithPaths("/api/"))))

		rec := do(h, http.MethodGet, "/admin/me", map[string]string{"Origin": "http://example.com"})
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origin func overrides list", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithHTTPMiddleware(middlewares.CORS(
			middlewares.WithAllowOrigins("http://listed.com"),
			middlewares.WithAllowOriginFunc(func(o string) bool { return o == "http://dynamic.com" }),
		)))

		rec := do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://listed.com"})
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		rec = do(h, http.MethodGet, "/api/news", map[string]string{"Origin": "http://dynamic.com"})
		assert.Equal(t, "http://dynamic.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("adds deadline", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithMiddleware(middlewares.Timeout(time.Second)))
		rec := do(h, http.MethodGet, "/deadline", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithMiddleware(middlewares.Timeout(10 * time.Millisecond)))
		rec := do(h, http.MethodGet, "/slow", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"request timeout"}`, rec.Body.String())
	})

	t.Run("client cancellation is not a timeout", func(t *testing.T) {
		t.Parallel()
		h := newServer(server.WithMiddleware(middlewares.Timeout(time.Minute)))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/slow", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
