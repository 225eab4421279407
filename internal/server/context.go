package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Context is the request/response pair passed to handlers.
type Context struct {
	w   *ResponseWriter
	r   *http.Request
	log *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *Context {
	return &Context{w: NewResponseWriter(w), r: r, log: log}
}

func (c *Context) Request() *http.Request { return c.r }

func (c *Context) Response() *ResponseWriter { return c.w }

// Context returns the request context.
func (c *Context) Context() context.Context { return c.r.Context() }

// SetContext replaces the request context.
func (c *Context) SetContext(ctx context.Context) { c.r = c.r.WithContext(ctx) }

// Logger returns the server logger. Records carry request attributes through the
// logger's context extractors when logged with the request context.
func (c *Context) Logger() *slog.Logger { return c.log }

// Param returns a URL path parameter.
func (c *Context) Param(name string) string { return chi.URLParam(c.r, name) }

// Query returns a query string value.
func (c *Context) Query(name string) string { return c.r.URL.Query().Get(name) }

func (c *Context) Header(name string) string { return c.r.Header.Get(name) }

func (c *Context) SetHeader(name, value string) { c.w.Header().Set(name, value) }

// Written reports whether a response has been started.
func (c *Context) Written() bool { return c.w.Written() }

// Bind decodes a JSON request body into v.
func (c *Context) Bind(v any) error {
	if ct := c.r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return NewHTTPError(http.StatusUnsupportedMediaType, "expected application/json body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(c.w, c.r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrRequestTooLarge("request body too large", WithError(err))
		case errors.Is(err, io.EOF):
			return ErrBadRequest("request body is empty", WithError(err))
		default:
			return ErrBadRequest("invalid JSON body", WithError(err))
		}
	}
	return nil
}

// JSON writes v as JSON with the given status.
func (c *Context) JSON(code int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write(buf.Bytes())
	return err
}

// HTML writes a pre-rendered HTML document.
func (c *Context) HTML(code int, body []byte) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write(body)
	return err
}

// Render renders a templ component. Rendering goes to a buffer first so a failing
// component never leaves a half-written page.
func (c *Context) Render(code int, comp templ.Component) error {
	var buf bytes.Buffer
	if err := comp.Render(c.Context(), &buf); err != nil {
		return err
	}
	return c.HTML(code, buf.Bytes())
}

// NoContent writes a status with no body.
func (c *Context) NoContent(code int) error {
	c.w.WriteHeader(code)
	return nil
}
