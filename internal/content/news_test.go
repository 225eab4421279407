package content_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

func newNews(t *testing.T, defaults ...content.NewsArticle) (*content.NewsService, *flakyBackend) {
	t.Helper()
	b := newFlakyBackend()
	s := content.NewNewsService(b, testOptions()...)
	require.NoError(t, s.Load(context.Background(), defaults))
	return s, b
}

func TestNewsLoadHealsSlugs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := snapshot.NewMemory()
	require.NoError(t, b.Save(ctx, content.KeyNews, []byte(`[
		{"id":"1","title":"Hello World","slug":""},
		{"id":"2","title":"Kept","slug":"  custom  "},
		{"id":"3","title":"No Slug Field"}
	]`)))

	s := content.NewNewsService(b)
	require.NoError(t, s.Load(ctx, nil))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "hello-world", list[0].Slug)
	assert.Equal(t, "custom", list[1].Slug)
	assert.Equal(t, "no-slug-field", list[2].Slug)

	got, err := s.BySlug("custom")
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)
}

func TestNewsCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("derives slug from title", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t)
		n, err := s.Create(ctx, content.NewsInput{
			Title:   "Global Tech Summit 2024: The Future of AI!",
			Content: `<p>ok</p><script>alert(1)</script>`,
			Tags:    []string{" AI ", "", "AI", "Tech"},
		})
		require.NoError(t, err)
		assert.Equal(t, "id-1", n.ID)
		assert.Equal(t, "global-tech-summit-2024-the-future-of-ai", n.Slug)
		assert.Equal(t, "2025-05-17", n.PublishedAt)
		assert.Equal(t, "<p>ok</p>", n.Content)
		assert.Equal(t, []string{"AI", "Tech"}, n.Tags)

		got, err := s.Get(n.ID)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	})

	t.Run("derived slug avoids fixed route segments", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t)
		for _, title := range []string{"Popular", "Categories"} {
			n, err := s.Create(ctx, content.NewsInput{Title: title})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(n.Slug, strings.ToLower(title)+"-"), n.Slug)
			assert.True(t, slug.IsValid(n.Slug), n.Slug)
		}
	})

	t.Run("keeps trimmed explicit slug", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t)
		n, err := s.Create(ctx, content.NewsInput{Title: "Anything", Slug: "  my-custom  "})
		require.NoError(t, err)
		assert.Equal(t, "my-custom", n.Slug)
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t)
		n, err := s.Create(ctx, content.NewsInput{Title: "Md", ContentMarkdown: "## Heading\n\nSome **bold** text."})
		require.NoError(t, err)
		assert.Contains(t, n.Content, "<h2")
		assert.Contains(t, n.Content, "<strong>bold</strong>")
	})

	t.Run("appends in order", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t)
		_, err := s.Create(ctx, content.NewsInput{Title: "First"})
		require.NoError(t, err)
		_, err = s.Create(ctx, content.NewsInput{Title: "Second"})
		require.NoError(t, err)

		list := s.List()
		require.Len(t, list, 2)
		assert.Equal(t, "First", list[0].Title)
		assert.Equal(t, "Second", list[1].Title)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		s, b := newNews(t)
		_, err := s.Create(ctx, content.NewsInput{Title: "   "})
		require.ErrorIs(t, err, content.ErrInvalidInput)
		_, err = s.Create(ctx, content.NewsInput{Title: "x", PublishedAt: "yesterday"})
		require.ErrorIs(t, err, content.ErrInvalidInput)
		assert.Empty(t, s.List())
		assert.Equal(t, int32(1), b.saves.Load())
	})

	t.Run("failed save keeps list unchanged", func(t *testing.T) {
		t.Parallel()
		s, b := newNews(t)
		b.broken.Store(true)
		_, err := s.Create(ctx, content.NewsInput{Title: "Lost"})
		require.ErrorIs(t, err, content.ErrFlush)
		assert.Empty(t, s.List())
	})
}

func TestNewsUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seedArticle := content.NewsArticle{ID: "1", Title: "Old Title", Slug: "old-title", PublishedAt: "2024-03-15", Tags: []string{"a"}}

	tests := []struct {
		name     string
		current  content.NewsArticle
		patch    content.NewsPatch
		wantSlug string
	}{
		{
			name:     "title change regenerates slug",
			current:  seedArticle,
			patch:    content.NewsPatch{Title: ptr("New Title!")},
			wantSlug: "new-title",
		},
		{
			name:     "same title keeps slug",
			current:  content.NewsArticle{ID: "1", Title: "Old Title", Slug: "hand-made", PublishedAt: "2024-03-15"},
			patch:    content.NewsPatch{Title: ptr("Old Title")},
			wantSlug: "hand-made",
		},
		{
			name:     "explicit slug wins over title change",
			current:  seedArticle,
			patch:    content.NewsPatch{Title: ptr("New Title"), Slug: ptr("  chosen  ")},
			wantSlug: "chosen",
		},
		{
			name:     "blank explicit slug falls back to rules",
			current:  seedArticle,
			patch:    content.NewsPatch{Title: ptr("Another"), Slug: ptr("   ")},
			wantSlug: "another",
		},
		{
			name:     "unrelated field keeps slug",
			current:  seedArticle,
			patch:    content.NewsPatch{Excerpt: ptr("new excerpt")},
			wantSlug: "old-title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, _ := newNews(t, tt.current)
			got, err := s.Update(ctx, "1", tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, got.Slug)
		})
	}

	t.Run("merges fields", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t, seedArticle)
		got, err := s.Update(ctx, "1", content.NewsPatch{
			Featured: ptr(true),
			Content:  ptr(`<p onclick="x()">hi</p>`),
			Tags:     &[]string{"b", "b"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Old Title", got.Title)
		assert.True(t, got.Featured)
		assert.Equal(t, "<p>hi</p>", got.Content)
		assert.Equal(t, []string{"b"}, got.Tags)
		assert.Equal(t, "2024-03-15", got.PublishedAt)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t, seedArticle)
		_, err := s.Update(ctx, "1", content.NewsPatch{Title: ptr("")})
		require.ErrorIs(t, err, content.ErrInvalidInput)
		got, err := s.Get("1")
		require.NoError(t, err)
		assert.Equal(t, seedArticle, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		s, _ := newNews(t, seedArticle)
		_, err := s.Update(ctx, "nope", content.NewsPatch{Title: ptr("x")})
		require.ErrorIs(t, err, content.ErrNotFound)
	})
}

func TestNewsQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, _ := newNews(t,
		content.NewsArticle{ID: "1", Title: "A", Slug: "a", Category: "Industry", PublishedAt: "2024-03-15", Featured: true},
		content.NewsArticle{ID: "2", Title: "B", Slug: "b", Category: "Enterprise", PublishedAt: "2024-03-20", Trending: true},
		content.NewsArticle{ID: "3", Title: "C", Slug: "c", Category: "Industry", PublishedAt: "2024-04-01"},
		content.NewsArticle{ID: "4", Title: "D", Slug: "d", Category: "", PublishedAt: "2024-05-01", Featured: true},
		content.NewsArticle{ID: "5", Title: "E", Slug: "e", Category: "Market", PublishedAt: "junk", Trending: true},
	)

	assert.Equal(t, []string{"Industry", "Enterprise", "Market"}, s.Categories())

	var ids []string
	for _, n := range s.Popular() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"4", "2", "1", "5"}, ids)

	assert.Len(t, s.ByCategory("industry"), 2)

	_, err := s.BySlug("")
	require.ErrorIs(t, err, content.ErrNotFound)
	_, err = s.BySlug("zzz")
	require.ErrorIs(t, err, content.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "3"))
	require.ErrorIs(t, s.Delete(ctx, "3"), content.ErrNotFound)
	_, err = s.Get("3")
	require.ErrorIs(t, err, content.ErrNotFound)
	assert.Len(t, s.List(), 4)
}
