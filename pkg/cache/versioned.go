package cache

import (
	"context"
	"sync"
	"time"
)

// Versioned wraps a cache with a generation counter that Clear advances.
// GetOrSet stores a computed value only if no Clear happened while it was being
// computed, so a value built from data that was invalidated mid-flight is
// returned to its callers but never cached.
//
// The counter is process-local.
type Versioned[V any] struct {
	Cache[V]

	mu  sync.Mutex
	gen uint64
}

// NewVersioned wraps c.
func NewVersioned[V any](c Cache[V]) *Versioned[V] {
	return &Versioned[V]{Cache: c}
}

// Generation returns the number of Clear calls so far.
func (v *Versioned[V]) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

// Clear advances the generation and clears the underlying cache.
func (v *Versioned[V]) Clear(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.Cache.Clear(ctx)
}

// SetAt stores value only if the generation is still gen. It reports whether the
// value was stored.
func (v *Versioned[V]) SetAt(ctx context.Context, gen uint64, key string, value V, ttl time.Duration) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return false, nil
	}
	if err := v.Cache.Set(ctx, key, value, ttl); err != nil {
		return false, err
	}
	return true, nil
}

var _ Cache[any] = (*Versioned[any])(nil)
