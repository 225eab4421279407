package handlers

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/server"
)

// PublicHandler serves read-only JSON under /api.
type PublicHandler struct {
	news    *content.NewsService
	product *content.ProductService
	company *content.CompanyService
}

func NewPublicHandler(news *content.NewsService, products *content.ProductService, company *content.CompanyService) *PublicHandler {
	return &PublicHandler{news: news, product: products, company: company}
}

func (h *PublicHandler) Routes(r server.Router) {
	r.Route("/api", func(r server.Router) {
		r.GET("/news", h.listNews)
		r.GET("/news/popular", h.popularNews)
		r.GET("/news/categories", h.newsCategories)
		r.GET("/news/{slug}", h.newsBySlug)

		r.GET("/products", h.listProducts)
		r.GET("/products/categories", h.productCategories)
		r.GET("/products/{slug}", h.productBySlug)

		r.GET("/company", h.getCompany)
	})
}

func (h *PublicHandler) listNews(c *server.Context) error {
	if cat := c.Query("category"); cat != "" {
		return c.JSON(http.StatusOK, h.news.ByCategory(cat))
	}
	return c.JSON(http.StatusOK, h.news.List())
}

func (h *PublicHandler) popularNews(c *server.Context) error {
	items := h.news.Popular()
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n >= 0 && n < len(items) {
		items = items[:n]
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PublicHandler) newsCategories(c *server.Context) error {
	return c.JSON(http.StatusOK, h.news.Categories())
}

func (h *PublicHandler) newsBySlug(c *server.Context) error {
	n, err := h.news.BySlug(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *PublicHandler) listProducts(c *server.Context) error {
	switch {
	case c.Query("featured") == "true":
		return c.JSON(http.StatusOK, h.product.Featured())
	case c.Query("category") != "":
		return c.JSON(http.StatusOK, h.product.ByCategory(c.Query("category")))
	}
	return c.JSON(http.StatusOK, h.product.List())
}

func (h *PublicHandler) productCategories(c *server.Context) error {
	return c.JSON(http.StatusOK, h.product.Categories())
}

func (h *PublicHandler) productBySlug(c *server.Context) error {
	p, err := h.product.BySlug(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PublicHandler) getCompany(c *server.Context) error {
	return c.JSON(http.StatusOK, h.company.Get())
}
