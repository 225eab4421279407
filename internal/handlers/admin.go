package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/b2bnews/internal/auth"
	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/pkg/cache"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
)

// maxUploadBytes bounds a multipart upload request. The file itself is limited by
// storage.ImageRules.
const maxUploadBytes = 11 << 20

// AdminHandler serves the authenticated content API under /admin/api.
type AdminHandler struct {
	auth    *auth.Service
	news    *content.NewsService
	product *content.ProductService
	media   *content.MediaService
	company *content.CompanyService
	slugs   *slug.Manager
	pages   cache.Cache[[]byte]
}

// NewAdminHandler creates the handler. pages, when not nil, is cleared after every
// successful change.
func NewAdminHandler(
	a *auth.Service,
	news *content.NewsService,
	products *content.ProductService,
	media *content.MediaService,
	company *content.CompanyService,
	slugs *slug.Manager,
	pages cache.Cache[[]byte],
) *AdminHandler {
	if slugs == nil {
		slugs = slug.New()
	}
	return &AdminHandler{
		auth:    a,
		news:    news,
		product: products,
		media:   media,
		company: company,
		slugs:   slugs,
		pages:   pages,
	}
}

func (h *AdminHandler) Routes(r server.Router) {
	r.Route("/admin/api", func(r server.Router) {
		r.Use(server.FromHTTP(h.auth.Require), h.invalidatePages)

		r.GET("/slug", h.previewSlug)

		r.GET("/news", h.listNews)
		r.POST("/news", h.createNews)
		r.GET("/news/{id}", h.getNews)
		r.PATCH("/news/{id}", h.updateNews)
		r.DELETE("/news/{id}", h.deleteNews)

		r.GET("/products", h.listProducts)
		r.POST("/products", h.createProduct)
		r.GET("/products/{id}", h.getProduct)
		r.PATCH("/products/{id}", h.updateProduct)
		r.DELETE("/products/{id}", h.deleteProduct)

		r.GET("/media", h.listMedia)
		r.POST("/media", h.addMedia)
		r.POST("/media/upload", h.uploadMedia)
		r.GET("/media/{id}", h.getMedia)
		r.PATCH("/media/{id}", h.updateMedia)
		r.DELETE("/media/{id}", h.deleteMedia)

		r.GET("/company", h.getCompany)
		r.PATCH("/company", h.updateCompany)
		r.POST("/company/reset", h.resetCompany)
	})
}

// invalidatePages drops cached pages after a successful write.
func (h *AdminHandler) invalidatePages(next server.HandlerFunc) server.HandlerFunc {
	return func(c *server.Context) error {
		err := next(c)
		if err != nil || h.pages == nil || c.Request().Method == http.MethodGet {
			return err
		}
		if cerr := h.pages.Clear(c.Context()); cerr != nil {
			c.Logger().WarnContext(c.Context(), "failed to clear page cache", slog.String("error", cerr.Error()))
		}
		return nil
	}
}

func (h *AdminHandler) previewSlug(c *server.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"slug": h.slugs.Slugify(c.Query("label"))})
}

// News

func (h *AdminHandler) listNews(c *server.Context) error {
	return c.JSON(http.StatusOK, h.news.List())
}

func (h *AdminHandler) getNews(c *server.Context) error {
	n, err := h.news.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *AdminHandler) createNews(c *server.Context) error {
	var in content.NewsInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	n, err := h.news.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *AdminHandler) updateNews(c *server.Context) error {
	var p content.NewsPatch
	if err := c.Bind(&p); err != nil {
		return err
	}
	n, err := h.news.Update(c.Context(), c.Param("id"), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *AdminHandler) deleteNews(c *server.Context) error {
	if err := h.news.Delete(c.Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Products

func (h *AdminHandler) listProducts(c *server.Context) error {
	return c.JSON(http.StatusOK, h.product.List())
}

func (h *AdminHandler) getProduct(c *server.Context) error {
	p, err := h.product.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) createProduct(c *server.Context) error {
	var in content.ProductInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	p, err := h.product.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) updateProduct(c *server.Context) error {
	var in content.ProductPatch
	if err := c.Bind(&in); err != nil {
		return err
	}
	p, err := h.product.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) deleteProduct(c *server.Context) error {
	if err := h.product.Delete(c.Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Media

func (h *AdminHandler) listMedia(c *server.Context) error {
	return c.JSON(http.StatusOK, h.media.List())
}

func (h *AdminHandler) getMedia(c *server.Context) error {
	m, err := h.media.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *AdminHandler) addMedia(c *server.Context) error {
	var in content.MediaInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	m, err := h.media.Add(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) uploadMedia(c *server.Context) error {
	if !h.media.UploadsEnabled() {
		return content.ErrUploadUnavailable
	}

	r := c.Request()
	r.Body = http.MaxBytesReader(c.Response(), r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return server.ErrRequestTooLarge("file is too large", server.WithError(err))
		}
		return server.ErrBadRequest("expected multipart/form-data with a file field", server.WithError(err))
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return server.ErrBadRequest("file field is required", server.WithError(err))
	}
	defer file.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}
	m, err := h.media.Upload(c.Context(), content.Upload{
		Body:        file,
		Name:        name,
		Alt:         r.FormValue("alt"),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) updateMedia(c *server.Context) error {
	var p content.MediaPatch
	if err := c.Bind(&p); err != nil {
		return err
	}
	m, err := h.media.Update(c.Context(), c.Param("id"), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *AdminHandler) deleteMedia(c *server.Context) error {
	if err := h.media.Delete(c.Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Company

func (h *AdminHandler) getCompany(c *server.Context) error {
	return c.JSON(http.StatusOK, h.company.Get())
}

func (h *AdminHandler) updateCompany(c *server.Context) error {
	var p content.CompanyPatch
	if err := c.Bind(&p); err != nil {
		return err
	}
	cfg, err := h.company.Update(c.Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) resetCompany(c *server.Context) error {
	cfg, err := h.company.Reset(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}
