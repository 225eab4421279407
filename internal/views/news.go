package views

import (
	"cmp"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/b2bnews/internal/content"
)

// NewsPage renders a single article with links to related stories.
func NewsPage(company content.CompanyConfig, n content.NewsArticle, related []content.NewsArticle) templ.Component {
	body := component(func(h *html) {
		h.raw(`<article class="news">`)
		if n.Category != "" {
			h.raw(`<p class="category">`)
			h.text(n.Category)
			h.raw(`</p>`)
		}
		h.raw(`<h1>`)
		h.text(n.Title)
		h.raw(`</h1><p class="byline">`)
		h.text(join(" · ", n.Author, n.PublishedAt))
		h.raw(`</p>`)
		if n.Image != "" {
			h.raw(`<figure><img`)
			h.url("src", n.Image)
			h.attr("alt", n.ImageAlt)
			h.raw(` loading="lazy"></figure>`)
		}
		if company.WatermarkText != "" {
			h.raw(`<div class="watermark" aria-hidden="true">`)
			h.text(company.WatermarkText)
			h.raw(`</div>`)
		}
		// Content is sanitized when it is saved.
		h.raw(`<div class="content">`, n.Content, `</div>`)
		if len(n.Tags) > 0 {
			h.raw(`<ul class="tags">`)
			for _, t := range n.Tags {
				h.raw(`<li>`)
				h.text(t)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</article>`)

		if len(related) > 0 {
			h.raw(`<aside class="related"><h2>Popular</h2>`)
			newsList(h, related)
			h.raw(`</aside>`)
		}
	})

	return Layout(company, Meta{
		Title:       cmp.Or(n.MetaTitle, n.Title),
		Description: cmp.Or(n.MetaDescription, n.Excerpt),
		Keywords:    n.MetaKeywords,
		Image:       n.Image,
		Canonical:   "/news/" + n.Slug,
	}, body)
}

// NewsIndex lists articles, optionally for one category.
func NewsIndex(company content.CompanyConfig, heading string, items []content.NewsArticle, categories []string) templ.Component {
	body := component(func(h *html) {
		h.raw(`<h1>`)
		h.text(cmp.Or(heading, "News"))
		h.raw(`</h1>`)
		if len(categories) > 0 {
			h.raw(`<nav class="categories">`)
			for _, c := range categories {
				h.raw(`<a`)
				h.url("href", "/news?category="+url.QueryEscape(c))
				h.raw(`>`)
				h.text(c)
				h.raw(`</a> `)
			}
			h.raw(`</nav>`)
		}
		if len(items) == 0 {
			h.raw(`<p class="empty">No articles yet.</p>`)
			return
		}
		newsList(h, items)
	})
	return Layout(company, Meta{Title: cmp.Or(heading, "News")}, body)
}

func newsList(h *html, items []content.NewsArticle) {
	h.raw(`<ul class="news-list">`)
	for _, n := range items {
		h.raw(`<li><a`)
		h.url("href", "/news/"+n.Slug)
		h.raw(`>`)
		h.text(n.Title)
		h.raw(`</a>`)
		if n.Excerpt != "" {
			h.raw(`<p>`)
			h.text(n.Excerpt)
			h.raw(`</p>`)
		}
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}
