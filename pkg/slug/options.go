package slug

import (
	"cmp"
	"slices"
	"strings"
)

// Option configures a Manager or a single Make call.
type Option func(*options)

type options struct {
	maxLength     int
	minLength     int
	separator     string
	stripChars    string
	replacer      *strings.Replacer
	suffixLength  int
	reserved      map[string]struct{}
	transliterate bool
}

func defaultOptions() *options {
	return &options{
		maxLength:     0, // 0 = unlimited
		minLength:     0,
		separator:     "-",
		suffixLength:  0,
		transliterate: false,
	}
}

// MaxLength caps generated slugs at n bytes, cutting at a separator when possible.
// A random suffix, when one is added, is kept whole and the label part is shortened.
// Explicit slugs passed to Create or Update are not truncated.
// Default: 0 (unlimited).
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// MinLength pads slugs shorter than n with a random 6-character suffix.
// MaxLength takes priority: the padding is shortened to fit.
// Default: 0 (no minimum).
func MinLength(n int) Option {
	return func(o *options) {
		o.minLength = max(n, 0)
	}
}

// Separator sets the string placed between words. Slugs built with anything but
// the default "-" do not pass IsValid.
// Default: "-".
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// StripChars removes every character in chars from the label before normalization,
// so "x[y]" with StripChars("[]") becomes "xy" instead of "x-y".
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars += chars
	}
}

// CustomReplace applies string replacements to the label before normalization.
// Longer keys are matched first.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		if len(replacements) == 0 {
			return
		}
		keys := make([]string, 0, len(replacements))
		for k := range replacements {
			if k != "" {
				keys = append(keys, k)
			}
		}
		slices.SortFunc(keys, func(a, b string) int {
			if c := cmp.Compare(len(b), len(a)); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
		pairs := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			pairs = append(pairs, k, replacements[k])
		}
		o.replacer = strings.NewReplacer(pairs...)
	}
}

// WithSuffix appends a random lowercase alphanumeric suffix of n characters to every
// generated slug. It also sets the suffix length used for reserved slugs.
// Default: 0 (no suffix).
func WithSuffix(n int) Option {
	return func(o *options) {
		o.suffixLength = max(n, 0)
	}
}

// ReservedSlugs lists slugs that generated slugs must not equal (case-insensitive).
// A generated slug that matches one gets a random suffix.
// Repeated calls add to the list.
func ReservedSlugs(slugs ...string) Option {
	return func(o *options) {
		if o.reserved == nil {
			o.reserved = make(map[string]struct{}, len(slugs))
		}
		for _, s := range slugs {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				o.reserved[s] = struct{}{}
			}
		}
	}
}

// WithTransliteration folds Latin diacritics to ASCII before normalization,
// so "Über Größe" becomes "uber-grosse" instead of "ber-gre".
// Default: disabled.
func WithTransliteration() Option {
	return func(o *options) {
		o.transliterate = true
	}
}
