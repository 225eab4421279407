package server

// Handler declares routes on a router.
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c *Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorMapper translates domain errors into HTTP errors.
// It returns nil for errors it does not know.
type ErrorMapper func(err error) *HTTPError
