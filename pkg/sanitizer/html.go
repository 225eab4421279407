// Package sanitizer cleans editor-supplied HTML and renders markdown for articles and
// product descriptions.
package sanitizer

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrMarkdown is returned when markdown conversion fails.
var ErrMarkdown = errors.New("sanitizer: failed to render markdown")

var (
	strictPolicy  *bluemonday.Policy
	articlePolicy *bluemonday.Policy
	md            goldmark.Markdown
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Rich text as produced by the admin editor: headings, lists, links, images, tables.
		articlePolicy = bluemonday.UGCPolicy()
		articlePolicy.AllowElements("h2", "h3", "h4", "figure", "figcaption")
		articlePolicy.AllowAttrs("loading").Matching(bluemonday.SpaceSeparatedTokens).OnElements("img")
		articlePolicy.AllowStyles("padding-left", "text-align").OnElements("ul", "ol", "p")
		articlePolicy.RequireNoFollowOnLinks(true)
		articlePolicy.AddTargetBlankToFullyQualifiedLinks(true)

		md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
}

// StripHTML removes all markup and returns plain text.
// Use for excerpts, alt texts and meta fields.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// ArticleHTML keeps formatting markup and drops scripts, event handlers and
// javascript: URLs.
func ArticleHTML(s string) string {
	initPolicies()
	return articlePolicy.Sanitize(s)
}

// Markdown renders GitHub-flavoured markdown to sanitized article HTML.
func Markdown(src string) (string, error) {
	initPolicies()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrMarkdown, err)
	}
	return articlePolicy.Sanitize(buf.String()), nil
}
