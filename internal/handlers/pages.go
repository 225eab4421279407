package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/internal/views"
	"github.com/dmitrymomot/b2bnews/pkg/cache"
)

// popularLimit is how many popular stories the home and article pages show.
const popularLimit = 5

// PagesHandler serves the public HTML pages. Rendered pages are cached by URL.
type PagesHandler struct {
	news    *content.NewsService
	product *content.ProductService
	company *content.CompanyService
	pages   cache.Cache[[]byte]
	ttl     time.Duration
}

// NewPagesHandler creates the handler. A nil pages cache renders every request.
func NewPagesHandler(news *content.NewsService, products *content.ProductService, company *content.CompanyService, pages cache.Cache[[]byte], ttl time.Duration) *PagesHandler {
	return &PagesHandler{news: news, product: products, company: company, pages: pages, ttl: ttl}
}

func (h *PagesHandler) Routes(r server.Router) {
	r.GET("/", h.home)
	r.GET("/news", h.newsIndex)
	r.GET("/news/{slug}", h.newsPage)
	r.GET("/products", h.productIndex)
	r.GET("/products/{slug}", h.productPage)
}

func (h *PagesHandler) home(c *server.Context) error {
	return h.page(c, func() (templ.Component, error) {
		return views.Home(h.company.Get(), limit(h.news.Popular(), popularLimit), h.product.Featured()), nil
	})
}

func (h *PagesHandler) newsIndex(c *server.Context) error {
	category := c.Query("category")
	return h.page(c, func() (templ.Component, error) {
		items := h.news.List()
		heading := "News"
		if category != "" {
			items = h.news.ByCategory(category)
			heading = category
		}
		return views.NewsIndex(h.company.Get(), heading, items, h.news.Categories()), nil
	})
}

func (h *PagesHandler) newsPage(c *server.Context) error {
	return h.page(c, func() (templ.Component, error) {
		n, err := h.news.BySlug(c.Param("slug"))
		if err != nil {
			return nil, err
		}
		related := make([]content.NewsArticle, 0, popularLimit)
		for _, p := range h.news.Popular() {
			if p.ID != n.ID && len(related) < popularLimit {
				related = append(related, p)
			}
		}
		return views.NewsPage(h.company.Get(), n, related), nil
	})
}

func (h *PagesHandler) productIndex(c *server.Context) error {
	return h.page(c, func() (templ.Component, error) {
		return views.ProductIndex(h.company.Get(), h.product.List()), nil
	})
}

func (h *PagesHandler) productPage(c *server.Context) error {
	return h.page(c, func() (templ.Component, error) {
		p, err := h.product.BySlug(c.Param("slug"))
		if err != nil {
			return nil, err
		}
		return views.ProductPage(h.company.Get(), p), nil
	})
}

// page renders build through the cache and answers unknown content with the 404 page.
func (h *PagesHandler) page(c *server.Context, build func() (templ.Component, error)) error {
	render := func(ctx context.Context) ([]byte, time.Duration, error) {
		comp, err := build()
		if err != nil {
			return nil, 0, err
		}
		var buf bytes.Buffer
		if err := comp.Render(ctx, &buf); err != nil {
			return nil, 0, err
		}
		return buf.Bytes(), h.ttl, nil
	}

	var (
		body []byte
		err  error
	)
	if h.pages != nil {
		body, err = cache.GetOrSet(c.Context(), h.pages, c.Request().URL.RequestURI(), render)
	} else {
		body, _, err = render(c.Context())
	}

	if errors.Is(err, content.ErrNotFound) {
		return c.Render(http.StatusNotFound, views.NotFound(h.company.Get()))
	}
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, body)
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
