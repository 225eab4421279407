// Package slug derives and maintains URL-safe identifiers for content items.
//
// A slug contains only lowercase ASCII letters, digits and single hyphens, and never
// starts or ends with a hyphen. Slugs are derived from a human-entered label (an article
// title, a product name) and are kept stable across edits that do not touch the label.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/b2bnews/pkg/slug"
//
//	s := slug.Slugify("Global Tech Summit 2024!")
//	// Output: "global-tech-summit-2024"
//
//	// Explicit slugs supplied by an editor are trusted verbatim (after trimming).
//	s = slug.Create("Aether Cloud Engine X1", "")
//	// Output: "aether-cloud-engine-x1"
//
// # Edit Rules
//
// [Update] decides whether an edit regenerates the slug:
//
//   - an explicit non-blank slug in the patch always wins;
//   - a changed label, or a current item without a slug, regenerates it from the label;
//   - any other edit keeps the current slug untouched.
//
// # Healing
//
// [Heal] repairs collections loaded from older snapshots: items with a blank slug get one
// derived from their label, every other slug is kept (trimmed). Items implement [Item] so
// healing works on plain value slices:
//
//	func (a Article) SlugLabel() string           { return a.Title }
//	func (a Article) SlugValue() string           { return a.Slug }
//	func (a Article) WithSlug(s string) Article   { a.Slug = s; return a }
//
//	articles = slug.Heal(articles)
//
// # Configuration Options
//
// The package-level functions use the default rules. [Make] and [Manager] accept options:
//
//	m := slug.New(slug.WithTransliteration(), slug.MaxLength(60))
//	m.Slugify("Café résumé") // "cafe-resume"
//
//	slug.Make("Fish & Chips @ Home", slug.CustomReplace(map[string]string{"&": "and", "@": "at"}))
//	// Output: "fish-and-chips-at-home"
//
//	slug.Make("Remove (these)", slug.StripChars("()"))
//	// Output: "remove-these"
//
//	slug.Make("Article Title", slug.WithSuffix(8))
//	// Output: "article-title-a3f7k2m9"
//
//	slug.Make("hi", slug.MinLength(5))
//	// Output: "hi-k2m9x4"
//
// ReservedSlugs keeps generated slugs off fixed path segments (case-insensitive) by
// appending a random suffix. Explicit slugs are not checked:
//
//	m := slug.New(slug.ReservedSlugs("popular", "categories"))
//	m.Slugify("Popular")               // "popular-x3k7f9"
//	m.Create("Anything", "popular")    // "popular"
//
// Separator replaces the hyphen between words; such slugs no longer pass [IsValid].
//
// Without transliteration, non-ASCII letters are dropped: "Café" becomes "caf".
// A byte order mark (U+FEFF) counts as whitespace.
//
// No uniqueness is enforced. Two items with the same label get the same slug.
package slug
