// Package content holds the microsite's editable data: news articles, products,
// media items and the company profile.
//
// Every collection lives in memory in an owned [Collection] that is loaded once from a
// snapshot backend and written back in full after each change. When the backend has
// nothing stored yet, the collection starts from the bundled seed data.
//
// News articles and products carry URL slugs that are maintained by pkg/slug: created
// from the label, regenerated when the label changes, and repaired on load.
package content
