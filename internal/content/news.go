package content

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/b2bnews/pkg/sanitizer"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

// NewsInput holds the fields of a new article.
// Content is HTML; when ContentMarkdown is set it is rendered and replaces Content.
type NewsInput struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Content         string   `json:"content"`
	ContentMarkdown string   `json:"contentMarkdown,omitempty"`
	Excerpt         string   `json:"excerpt"`
	Image           string   `json:"image"`
	ImageAlt        string   `json:"imageAlt"`
	Author          string   `json:"author"`
	PublishedAt     string   `json:"publishedAt"`
	Featured        bool     `json:"featured"`
	Trending        bool     `json:"trending"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	MetaKeywords    string   `json:"metaKeywords,omitempty"`
	Tags            []string `json:"tags"`
	Slug            string   `json:"slug,omitempty"`
}

// NewsPatch holds a partial article update. Nil fields are left untouched.
type NewsPatch struct {
	Title           *string   `json:"title,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Content         *string   `json:"content,omitempty"`
	ContentMarkdown *string   `json:"contentMarkdown,omitempty"`
	Excerpt         *string   `json:"excerpt,omitempty"`
	Image           *string   `json:"image,omitempty"`
	ImageAlt        *string   `json:"imageAlt,omitempty"`
	Author          *string   `json:"author,omitempty"`
	PublishedAt     *string   `json:"publishedAt,omitempty"`
	Featured        *bool     `json:"featured,omitempty"`
	Trending        *bool     `json:"trending,omitempty"`
	MetaTitle       *string   `json:"metaTitle,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty"`
	MetaKeywords    *string   `json:"metaKeywords,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	Slug            *string   `json:"slug,omitempty"`
}

// NewsService manages news articles.
type NewsService struct {
	items *Collection[NewsArticle]
	opts  *options
}

func NewNewsService(backend snapshot.Backend, opts ...Option) *NewsService {
	o := applyOptions(opts)
	return &NewsService{
		items: NewCollection[NewsArticle](backend, KeyNews, o.log),
		opts:  o,
	}
}

// Load reads the stored articles and repairs missing slugs.
// defaults is used when nothing has been stored yet.
func (s *NewsService) Load(ctx context.Context, defaults []NewsArticle) error {
	return s.items.Load(ctx, func(items []NewsArticle) []NewsArticle {
		return slug.HealWith(s.opts.slugs, items)
	}, func() []NewsArticle {
		return slices.Clone(defaults)
	})
}

// Flush writes the current articles to the backend.
func (s *NewsService) Flush(ctx context.Context) error {
	return s.items.Flush(ctx)
}

func (s *NewsService) List() []NewsArticle {
	return s.items.All()
}

func (s *NewsService) Get(id string) (NewsArticle, error) {
	n, ok := s.items.Find(func(n NewsArticle) bool { return n.ID == id })
	if !ok {
		return NewsArticle{}, ErrNotFound
	}
	return n, nil
}

func (s *NewsService) BySlug(value string) (NewsArticle, error) {
	if value == "" {
		return NewsArticle{}, ErrNotFound
	}
	n, ok := s.items.Find(func(n NewsArticle) bool { return n.Slug == value })
	if !ok {
		return NewsArticle{}, ErrNotFound
	}
	return n, nil
}

// Categories returns the distinct article categories in first-seen order.
func (s *NewsService) Categories() []string {
	return distinct(s.items.All(), func(n NewsArticle) string { return n.Category })
}

// Popular returns trending or featured articles, newest first.
// Articles with an unreadable date go last.
func (s *NewsService) Popular() []NewsArticle {
	out := slices.DeleteFunc(s.items.All(), func(n NewsArticle) bool {
		return !n.Trending && !n.Featured
	})
	slices.SortStableFunc(out, func(a, b NewsArticle) int {
		ta, okA := parseDate(a.PublishedAt)
		tb, okB := parseDate(b.PublishedAt)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}

// ByCategory returns the articles of one category in stored order.
func (s *NewsService) ByCategory(category string) []NewsArticle {
	return slices.DeleteFunc(s.items.All(), func(n NewsArticle) bool {
		return !strings.EqualFold(n.Category, category)
	})
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (NewsArticle, error) {
	n := NewsArticle{
		ID:              s.opts.newID(),
		Title:           strings.TrimSpace(in.Title),
		Category:        strings.TrimSpace(in.Category),
		Content:         in.Content,
		Excerpt:         in.Excerpt,
		Image:           in.Image,
		ImageAlt:        in.ImageAlt,
		Author:          in.Author,
		PublishedAt:     cmp.Or(strings.TrimSpace(in.PublishedAt), s.opts.now().Format(dateLayout)),
		Featured:        in.Featured,
		Trending:        in.Trending,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		MetaKeywords:    in.MetaKeywords,
		Tags:            cleanTags(in.Tags),
	}
	if in.ContentMarkdown != "" {
		html, err := sanitizer.Markdown(in.ContentMarkdown)
		if err != nil {
			return NewsArticle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		n.Content = html
	}
	n.Content = sanitizer.ArticleHTML(n.Content)

	if err := validateNews(n); err != nil {
		return NewsArticle{}, err
	}
	n.Slug = s.opts.slugs.Create(n.Title, in.Slug)

	if err := s.items.Append(ctx, n); err != nil {
		return NewsArticle{}, err
	}
	s.opts.log.InfoContext(ctx, "news article created", slog.String("id", n.ID), slog.String("slug", n.Slug))
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id string, p NewsPatch) (NewsArticle, error) {
	var rendered *string
	if p.ContentMarkdown != nil && *p.ContentMarkdown != "" {
		html, err := sanitizer.Markdown(*p.ContentMarkdown)
		if err != nil {
			return NewsArticle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rendered = &html
	}

	n, err := s.items.Update(ctx, func(n NewsArticle) bool { return n.ID == id }, func(cur NewsArticle) (NewsArticle, error) {
		next := cur
		if p.Title != nil {
			next.Title = strings.TrimSpace(*p.Title)
		}
		if p.Category != nil {
			next.Category = strings.TrimSpace(*p.Category)
		}
		set(&next.Content, p.Content)
		set(&next.Content, rendered)
		set(&next.Excerpt, p.Excerpt)
		set(&next.Image, p.Image)
		set(&next.ImageAlt, p.ImageAlt)
		set(&next.Author, p.Author)
		set(&next.PublishedAt, p.PublishedAt)
		set(&next.Featured, p.Featured)
		set(&next.Trending, p.Trending)
		set(&next.MetaTitle, p.MetaTitle)
		set(&next.MetaDescription, p.MetaDescription)
		set(&next.MetaKeywords, p.MetaKeywords)
		if p.Tags != nil {
			next.Tags = cleanTags(*p.Tags)
		}
		if p.Content != nil || rendered != nil {
			next.Content = sanitizer.ArticleHTML(next.Content)
		}
		if err := validateNews(next); err != nil {
			return NewsArticle{}, err
		}
		next.Slug = s.opts.slugs.Update(cur, slug.Patch{Label: patchLabel(p.Title), Slug: p.Slug})
		return next, nil
	})
	if err != nil {
		return NewsArticle{}, err
	}
	s.opts.log.InfoContext(ctx, "news article updated", slog.String("id", n.ID), slog.String("slug", n.Slug))
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, func(n NewsArticle) bool { return n.ID == id }); err != nil {
		return err
	}
	s.opts.log.InfoContext(ctx, "news article deleted", slog.String("id", id))
	return nil
}

func validateNews(n NewsArticle) error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if _, ok := parseDate(n.PublishedAt); !ok {
		return fmt.Errorf("%w: publishedAt must be a date (YYYY-MM-DD)", ErrInvalidInput)
	}
	return nil
}

// patchLabel trims a patched label the same way the stored label is trimmed.
func patchLabel(label *string) *string {
	if label == nil {
		return nil
	}
	v := strings.TrimSpace(*label)
	return &v
}
