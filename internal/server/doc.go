// Package server is the HTTP layer: a chi router wrapped in an error-returning
// handler model, request-scoped logging and a graceful run loop.
//
// Handlers declare routes through the Router interface:
//
//	type NewsHandler struct{ news *content.NewsService }
//
//	func (h *NewsHandler) Routes(r server.Router) {
//	    r.GET("/api/news", h.list)
//	}
//
//	func (h *NewsHandler) list(c *server.Context) error {
//	    return c.JSON(http.StatusOK, h.news.List())
//	}
//
// A returned error is rendered as JSON {"error": message}. *HTTPError values pick
// the status code; other errors go through the configured ErrorMapper and fall
// back to 500.
package server
