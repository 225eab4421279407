package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Manager applies slug rules with a fixed configuration.
// The zero configuration (New with no options) matches the package-level functions.
type Manager struct {
	opts *options
}

// New creates a Manager with the given options.
func New(opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Manager{opts: o}
}

// Slugify normalizes label into a slug.
func (m *Manager) Slugify(label string) string {
	o := m.opts
	if o.replacer != nil {
		label = o.replacer.Replace(label)
	}
	if o.stripChars != "" {
		label = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, label)
	}
	if o.transliterate {
		label = fold(label)
	}

	s := truncate(normalize(label, o.separator), o.maxLength, o.separator)

	n := o.suffixLength
	if n == 0 && m.reserved(s) {
		n = defaultSuffixLength
	}
	if n > 0 {
		s = m.withSuffix(s, n)
	}

	if o.minLength > 0 && len(s) < o.minLength {
		s = m.pad(s)
	}
	return s
}

func (m *Manager) reserved(s string) bool {
	if s == "" || len(m.opts.reserved) == 0 {
		return false
	}
	_, ok := m.opts.reserved[strings.ToLower(s)]
	return ok
}

// withSuffix appends a random suffix of n characters, shortening base so the result
// fits MaxLength. When there is no room for base the suffix alone is returned.
func (m *Manager) withSuffix(base string, n int) string {
	sep, limit := m.opts.separator, m.opts.maxLength
	suffix := randomSuffix(n)
	if limit > 0 {
		room := limit - len(sep) - n
		if room <= 0 {
			return suffix[:min(n, limit)]
		}
		base = truncate(base, room, sep)
	}
	if base == "" {
		return suffix
	}
	return base + sep + suffix
}

// pad appends a random suffix to a slug shorter than MinLength. The suffix is cut to
// fit MaxLength; s is returned unchanged when nothing fits.
func (m *Manager) pad(s string) string {
	sep := m.opts.separator
	if s == "" {
		sep = ""
	}
	n := defaultSuffixLength
	if limit := m.opts.maxLength; limit > 0 {
		n = min(n, limit-len(s)-len(sep))
	}
	if n <= 0 {
		return s
	}
	return s + sep + randomSuffix(n)
}

// Create returns the slug for a new item: the trimmed explicit slug when it is not blank,
// otherwise the slug of label.
func (m *Manager) Create(label, explicit string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	return m.Slugify(label)
}

// Update returns the slug current should carry after patch.
//
// An empty patch label counts as absent. A current slug made only of whitespace counts
// as missing.
func (m *Manager) Update(current Labeled, patch Patch) string {
	if patch.Slug != nil {
		if s := strings.TrimSpace(*patch.Slug); s != "" {
			return s
		}
	}

	label := current.SlugLabel()
	changed := false
	if patch.Label != nil && *patch.Label != "" {
		changed = *patch.Label != label
		label = *patch.Label
	}

	if changed || strings.TrimSpace(current.SlugValue()) == "" {
		return m.Slugify(label)
	}
	return current.SlugValue()
}

// truncate cuts s to at most n bytes, preferring a separator boundary.
// s must already be normalized (ASCII only).
func truncate(s string, n int, sep string) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := s[:n]
	if sep == "" {
		return cut
	}
	if !strings.HasPrefix(s[n:], sep) {
		if i := strings.LastIndex(cut, sep); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, sep)
}

const (
	defaultSuffixLength = 6
	suffixAlphabet      = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// randomSuffix returns n random lowercase letters and digits.
func randomSuffix(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never returns an error.
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}

// Letters that do not decompose into a base letter plus combining marks.
var foldReplacer = strings.NewReplacer(
	"ß", "ss", "ẞ", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
)

// fold strips diacritics from Latin letters.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, foldReplacer.Replace(s))
	if err != nil {
		return s
	}
	return out
}
