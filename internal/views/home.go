package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/b2bnews/internal/content"
)

// Home shows popular news and featured products.
func Home(company content.CompanyConfig, popular []content.NewsArticle, featured []content.Product) templ.Component {
	body := component(func(h *html) {
		h.raw(`<section class="popular"><h2>Popular news</h2>`)
		newsList(h, popular)
		h.raw(`</section><section class="featured"><h2>Featured products</h2>`)
		productList(h, featured)
		h.raw(`</section>`)
	})
	return Layout(company, Meta{Description: company.CompanyFullName}, body)
}

// NotFound is the public 404 page.
func NotFound(company content.CompanyConfig) templ.Component {
	body := component(func(h *html) {
		h.raw(`<h1>Page not found</h1><p><a href="/">Back to the home page</a></p>`)
	})
	return Layout(company, Meta{Title: "Not found"}, body)
}
