package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/b2bnews/pkg/logger"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

// Collection is an ordered list of T mirrored to a snapshot key.
// Mutations are written through to the backend; if the write fails the in-memory
// state is left as it was and the error is returned.
type Collection[T any] struct {
	mu      sync.RWMutex
	backend snapshot.Backend
	log     *slog.Logger
	key     string
	items   []T
}

// NewCollection creates an empty collection bound to key. Call Load before use.
func NewCollection[T any](backend snapshot.Backend, key string, log *slog.Logger) *Collection[T] {
	if log == nil {
		log = logger.NewNope()
	}
	return &Collection[T]{backend: backend, key: key, log: log}
}

// Load reads the stored snapshot and passes it through fix (if not nil).
// When nothing is stored, the collection starts from defaults and is saved at once.
func (c *Collection[T]) Load(ctx context.Context, fix func([]T) []T, defaults func() []T) error {
	data, err := c.backend.Load(ctx, c.key)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		var items []T
		if defaults != nil {
			items = defaults()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if err := c.save(ctx, items); err != nil {
			return err
		}
		c.items = items
		c.log.InfoContext(ctx, "collection seeded", slog.String("key", c.key), slog.Int("items", len(items)))
		return nil
	case err != nil:
		return err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Join(ErrCorruptSnapshot, err)
	}
	if fix != nil {
		items = fix(items)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.log.DebugContext(ctx, "collection loaded", slog.String("key", c.key), slog.Int("items", len(items)))
	return nil
}

// All returns a copy of the items in order. It is never nil.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the first item matching fn.
func (c *Collection[T]) Find(fn func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if fn(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Append adds item at the end.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append(slices.Clone(items), item), nil
	})
}

// Prepend adds item at the front.
func (c *Collection[T]) Prepend(ctx context.Context, item T) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	})
}

// Update replaces the first item matching match with fn(item).
// It returns ErrNotFound when nothing matches, or the error of fn.
func (c *Collection[T]) Update(ctx context.Context, match func(T) bool, fn func(T) (T, error)) (T, error) {
	var updated T
	err := c.mutate(ctx, func(items []T) ([]T, error) {
		i := slices.IndexFunc(items, match)
		if i < 0 {
			return nil, ErrNotFound
		}
		next, err := fn(items[i])
		if err != nil {
			return nil, err
		}
		out := slices.Clone(items)
		out[i] = next
		updated = next
		return out, nil
	})
	return updated, err
}

// Delete removes every item matching match. It returns ErrNotFound when nothing matched.
func (c *Collection[T]) Delete(ctx context.Context, match func(T) bool) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		out := slices.DeleteFunc(slices.Clone(items), match)
		if len(out) == len(items) {
			return nil, ErrNotFound
		}
		return out, nil
	})
}

// Replace swaps the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.mutate(ctx, func([]T) ([]T, error) {
		return slices.Clone(items), nil
	})
}

// Flush writes the current items to the backend.
func (c *Collection[T]) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, c.items)
}

// mutate computes the next state from the current one and commits it only after
// it was saved.
func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.items)
	if err != nil {
		return err
	}
	if err := c.save(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Join(ErrFlush, err)
	}
	if err := c.backend.Save(ctx, c.key, data); err != nil {
		c.log.ErrorContext(ctx, "failed to persist collection", slog.String("key", c.key), slog.String("error", err.Error()))
		return errors.Join(ErrFlush, err)
	}
	return nil
}
