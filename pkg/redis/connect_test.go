package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()
		_, err := parse(Config{})
		assert.ErrorIs(t, err, ErrEmptyConnectionURL)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		for _, u := range []string{"http://localhost:6379", "localhost:6379", "postgres://x"} {
			_, err := parse(Config{URL: u})
			assert.ErrorIs(t, err, ErrFailedToParseURL, u)
		}
	})

	t.Run("applies overrides", func(t *testing.T) {
		t.Parallel()
		opts, err := parse(Config{URL: "redis://localhost:6379/2", PoolSize: 7, DialTimeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, time.Second, opts.DialTimeout)
		assert.Equal(t, 2, opts.DB)
	})
}

func TestConnectHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Port 1 is never a Redis server.
	_, err := Connect(ctx, Config{
		URL:           "redis://127.0.0.1:1/0",
		RetryAttempts: 5,
		RetryInterval: time.Second,
		DialTimeout:   50 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}
