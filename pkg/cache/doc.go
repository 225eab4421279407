// Package cache provides a small generic key-value cache with TTLs.
//
// Two backends implement [Cache]: [Memory], a size-bounded LRU for single-process
// deployments and tests, and [Redis] for deployments with more than one instance.
// The service uses it for admin sessions and for rendered public pages.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's default TTL
//   - Negative: entry never expires
//
// [GetOrSet] collapses concurrent misses for the same key into one call:
//
//	page, err := cache.GetOrSet(ctx, pages, "/news/foo", func(ctx context.Context) ([]byte, time.Duration, error) {
//		b, err := render(ctx)
//		return b, 10 * time.Minute, err
//	})
//
// Wrap a cache in [Versioned] when it is cleared on writes: GetOrSet then drops a
// value whose computation overlapped a Clear instead of caching stale data.
package cache
