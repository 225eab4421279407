package views

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/b2bnews/internal/content"
)

// ProductPage renders a product with its specification table.
func ProductPage(company content.CompanyConfig, p content.Product) templ.Component {
	body := component(func(h *html) {
		h.raw(`<article class="product"><h1>`)
		h.text(p.Name)
		h.raw(`</h1>`)
		if p.Category != "" {
			h.raw(`<p class="category">`)
			h.text(p.Category)
			h.raw(`</p>`)
		}
		if p.Image != "" {
			h.raw(`<figure><img`)
			h.url("src", p.Image)
			h.attr("alt", p.ImageAlt)
			h.raw(`></figure>`)
		}
		for _, g := range p.Gallery {
			h.raw(`<img class="gallery"`)
			h.url("src", g)
			h.attr("alt", p.Name)
			h.raw(` loading="lazy">`)
		}
		if p.Price > 0 {
			h.raw(`<p class="price">$`)
			h.text(formatPrice(p.Price))
			h.raw(`</p>`)
		}
		h.raw(`<p class="summary">`)
		h.text(p.ShortDescription)
		h.raw(`</p>`)
		// Description is sanitized when it is saved.
		h.raw(`<div class="content">`, p.Description, `</div>`)

		if len(p.Specifications) > 0 {
			h.raw(`<table class="specs"><tbody>`)
			keys := make([]string, 0, len(p.Specifications))
			for k := range p.Specifications {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				h.raw(`<tr><th>`)
				h.text(k)
				h.raw(`</th><td>`)
				h.text(p.Specifications[k])
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		if p.ExternalLink != "" {
			h.raw(`<p><a class="cta" rel="noopener" target="_blank"`)
			h.url("href", p.ExternalLink)
			h.raw(`>Learn more</a></p>`)
		}
		h.raw(`</article>`)
	})

	return Layout(company, Meta{
		Title:       cmp.Or(p.MetaTitle, p.Name),
		Description: cmp.Or(p.MetaDescription, p.ShortDescription),
		Keywords:    p.MetaKeywords,
		Image:       p.Image,
		Canonical:   "/products/" + p.Slug,
	}, body)
}

// ProductIndex lists products.
func ProductIndex(company content.CompanyConfig, items []content.Product) templ.Component {
	body := component(func(h *html) {
		h.raw(`<h1>Products</h1>`)
		if len(items) == 0 {
			h.raw(`<p class="empty">No products yet.</p>`)
			return
		}
		productList(h, items)
	})
	return Layout(company, Meta{Title: "Products"}, body)
}

func productList(h *html, items []content.Product) {
	h.raw(`<ul class="product-list">`)
	for _, p := range items {
		h.raw(`<li><a`)
		h.url("href", "/products/"+p.Slug)
		h.raw(`>`)
		h.text(p.Name)
		h.raw(`</a><p>`)
		h.text(p.ShortDescription)
		h.raw(`</p></li>`)
	}
	h.raw(`</ul>`)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
