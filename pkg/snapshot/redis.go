package snapshot

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "b2bnews:snapshot"

// Redis stores snapshots as plain string values under "{prefix}:{key}".
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps an open client. An empty prefix means "b2bnews:snapshot".
// Close closes the client.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+":"+key, data, 0).Err(); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
