package slug

import (
	"strings"
	"unicode"
)

// Labeled is anything that owns a label and a slug derived from it.
type Labeled interface {
	// SlugLabel returns the human label the slug is derived from.
	SlugLabel() string
	// SlugValue returns the stored slug, possibly empty.
	SlugValue() string
}

// Item is a Labeled value that can return a copy of itself with a new slug.
type Item[T any] interface {
	Labeled
	WithSlug(slug string) T
}

// Patch carries the slug-relevant part of an edit.
// A nil field means the edit does not touch it.
type Patch struct {
	Label *string
	Slug  *string
}

var defaultManager = New()

// Slugify normalizes a label into a slug using the default rules.
// The result is empty when the label has no letters or digits.
func Slugify(label string) string {
	return defaultManager.Slugify(label)
}

// Create returns the slug for a new item.
// A non-blank explicit slug is used verbatim after trimming.
func Create(label, explicit string) string {
	return defaultManager.Create(label, explicit)
}

// Update returns the slug an item should carry after applying patch.
func Update(current Labeled, patch Patch) string {
	return defaultManager.Update(current, patch)
}

// Heal fills blank slugs from labels and trims the rest.
// The input slice is not modified.
func Heal[T Item[T]](items []T) []T {
	return HealWith(defaultManager, items)
}

// HealWith is Heal using the rules of m.
func HealWith[T Item[T]](m *Manager, items []T) []T {
	if items == nil {
		return nil
	}
	healed := make([]T, len(items))
	for i, item := range items {
		s := strings.TrimSpace(item.SlugValue())
		if s == "" {
			s = m.Slugify(item.SlugLabel())
		}
		healed[i] = item.WithSlug(s)
	}
	return healed
}

// IsValid reports whether s is a non-empty, well-formed slug.
func IsValid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
			if s[i-1] == '-' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Make returns the slug of s built with opts. Make(s) equals Slugify(s).
func Make(s string, opts ...Option) string {
	if len(opts) == 0 {
		return defaultManager.Slugify(s)
	}
	return New(opts...).Slugify(s)
}

// normalize lowercases s, drops everything but ASCII letters, digits, whitespace and
// hyphens, and joins the remaining words with sep.
func normalize(s, sep string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r) || r == '\ufeff':
			// U+FEFF is not in unicode.White_Space but separates words in pasted text.
			pending = true
		}
	}
	return b.String()
}
