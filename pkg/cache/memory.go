package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMaxEntries = 10_000
	defaultTTL        = time.Hour
)

type entry[V any] struct {
	expiresAt time.Time // zero = never
	value     V
}

// Memory is an in-process LRU cache with per-entry expiration.
// Expired entries are dropped lazily on access or pushed out by newer ones.
type Memory[V any] struct {
	lru        *lru.Cache[string, entry[V]]
	defaultTTL time.Duration
	now        func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxEntries int
	defaultTTL time.Duration
}

// WithMaxEntries bounds the number of entries. Default: 10000.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}

// WithDefaultTTL sets the TTL used when Set is called with zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// NewMemory creates an in-memory cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := &memoryOptions{maxEntries: defaultMaxEntries, defaultTTL: defaultTTL}
	for _, opt := range opts {
		opt(o)
	}

	// lru.New only fails on a non-positive size, which the options rule out.
	c, _ := lru.New[string, entry[V]](o.maxEntries)
	return &Memory[V]{lru: c, defaultTTL: o.defaultTTL, now: time.Now}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		m.lru.Remove(key)
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.lru.Purge()
	return nil
}

// Len returns the number of entries, including expired ones not yet dropped.
func (m *Memory[V]) Len() int {
	return m.lru.Len()
}

var _ Cache[any] = (*Memory[any])(nil)
