package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "strips all tags", input: `<p>Hello <strong>world</strong></p>`, expected: "Hello world"},
		{name: "strips event handlers", input: `<img src="x" onerror="alert('xss')">`, expected: ""},
		{name: "plain text untouched", input: "Exploring AI in manufacturing", expected: "Exploring AI in manufacturing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestArticleHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps article structure", func(t *testing.T) {
		t.Parallel()
		in := `<h2>The Next Industrial Revolution</h2><p>Text</p><h3>Key Takeaways</h3><ul><li>One</li></ul>`
		assert.Equal(t, in, sanitizer.ArticleHTML(in))
	})

	t.Run("removes scripts and handlers", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.ArticleHTML(`<p onclick="evil()">Hi</p><script>alert(1)</script>`)
		assert.Equal(t, "<p>Hi</p>", out)
	})

	t.Run("drops javascript links", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.ArticleHTML(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, out, "javascript")
	})

	t.Run("keeps list indentation style", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.ArticleHTML(`<ul style="padding-left: 20px;"><li>a</li></ul>`)
		assert.Contains(t, out, "padding-left")
	})

	t.Run("adds nofollow to links", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.ArticleHTML(`<a href="https://example.com/aether">Aether</a>`)
		assert.Contains(t, out, `rel="nofollow`)
	})
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.Markdown("## Green Energy\n\nIs **good** business.\n\n- one\n- two\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Green Energy</h2>")
	assert.Contains(t, out, "<strong>good</strong>")
	assert.Contains(t, out, "<li>one</li>")
	assert.NotContains(t, out, "<script>")
}
