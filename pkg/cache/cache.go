package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
}

// Codec converts values to bytes for backends that store raw bytes.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSONCodec encodes values as JSON.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

var group singleflight.Group

// GetOrSet returns the cached value for key, computing and storing it with fn on a miss.
// Concurrent misses for the same key share a single fn call, which runs with a context
// that is not canceled when the first caller goes away. Errors from fn are returned
// and nothing is cached. On a [Versioned] cache the value is not stored if the cache
// was cleared while fn ran.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	vc, versioned := c.(*Versioned[V])
	var gen uint64
	if versioned {
		gen = vc.Generation()
	}

	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	type result struct{ val V }

	// Calls are shared per cache instance, not just per key.
	res, err, _ := group.Do(fmt.Sprintf("%p/%s", c, key), func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if versioned {
			_, _ = vc.SetAt(ctx, gen, key, val, ttl)
		} else {
			_ = c.Set(ctx, key, val, ttl)
		}
		return result{val: val}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(result).val, nil
}
