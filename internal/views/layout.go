package views

import (
	"cmp"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/b2bnews/internal/content"
)

// Meta describes the document head.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Image       string
	Canonical   string
}

// Layout wraps body in the site chrome.
func Layout(company content.CompanyConfig, meta Meta, body templ.Component) templ.Component {
	return component(func(h *html) {
		title := join(" | ", meta.Title, company.BrandName)
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(cmp.Or(title, "News"))
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", meta.Description)
			h.raw(`>`)
		}
		if meta.Keywords != "" {
			h.raw(`<meta name="keywords"`)
			h.attr("content", meta.Keywords)
			h.raw(`>`)
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", cmp.Or(meta.Title, company.BrandName))
		h.raw(`>`)
		if meta.Image != "" {
			h.raw(`<meta property="og:image"`)
			h.url("content", meta.Image)
			h.raw(`>`)
		}
		if meta.Canonical != "" {
			h.raw(`<link rel="canonical"`)
			h.url("href", meta.Canonical)
			h.raw(`>`)
		}
		h.raw(`</head><body>`)

		h.raw(`<header class="site-header"><a class="brand" href="/">`)
		h.text(cmp.Or(company.BrandName, company.CompanyFullName))
		h.raw(`</a><nav><a href="/news">News</a> <a href="/products">Products</a></nav></header>`)

		h.raw(`<main>`)
		h.component(body)
		h.raw(`</main>`)

		footer(h, company)
		h.raw(`</body></html>`)
	})
}

func footer(h *html, c content.CompanyConfig) {
	h.raw(`<footer class="site-footer">`)
	h.raw(`<p class="company">`)
	h.text(c.CompanyFullName)
	h.raw(`</p>`)
	if contact := join(" · ", c.ContactAddress, c.PostalCode); contact != "" {
		h.raw(`<p class="address">`)
		h.text(contact)
		h.raw(`</p>`)
	}
	if phone := join(" · ", "Tel: "+c.PhoneNumber, faxLine(c.FaxNumber)); c.PhoneNumber != "" {
		h.raw(`<p class="phone">`)
		h.text(phone)
		h.raw(`</p>`)
	}
	if c.Email != "" {
		h.raw(`<p class="email"><a`)
		h.attr("href", "mailto:"+c.Email)
		h.raw(`>`)
		h.text(c.Email)
		h.raw(`</a></p>`)
	}
	if c.QRCodeImage != "" {
		h.raw(`<img class="qrcode" alt="QR code"`)
		h.url("src", c.QRCodeImage)
		h.raw(`>`)
	}
	h.raw(`<p class="copyright">`)
	h.text(join(" ", c.CopyrightText, c.RegistrationNumber))
	h.raw(`</p></footer>`)
}

func faxLine(fax string) string {
	if fax == "" {
		return ""
	}
	return "Fax: " + fax
}
