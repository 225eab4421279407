package content

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot keys, shared with the original storage layout.
const (
	KeyNews     = "nuxt_news_data"
	KeyProducts = "nuxt_products_data"
	KeyMedia    = "nuxt_media_data"
	KeyCompany  = "company_config"
)

const (
	dateLayout = "2006-01-02"
	// isoLayout matches JavaScript's Date.toISOString.
	isoLayout = "2006-01-02T15:04:05.000Z"
)

func newID() string {
	return uuid.NewString()
}

func isoTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// distinct returns the non-empty values in first-seen order.
func distinct[T any](items []T, fn func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		v := fn(it)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
