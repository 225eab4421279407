package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

type failingStorage struct {
	storage.Storage
}

func (failingStorage) Put(context.Context, storage.Object) (*storage.FileInfo, error) {
	return nil, storage.ErrUploadFailed
}

func newJob(t *testing.T, store storage.Storage) (*Job, *snapshot.Memory) {
	t.Helper()
	backend := snapshot.NewMemory()
	j := New(Config{Schedule: "0 3 * * *", Prefix: "backups"}, backend, store, nil)
	j.now = func() time.Time { return time.Date(2025, 5, 17, 9, 30, 0, 0, time.UTC) }
	return j, backend
}

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := storage.NewMemory("https://cdn.example.com")
	j, backend := newJob(t, store)
	require.NoError(t, backend.Save(ctx, content.KeyNews, []byte(`[{"id":"1"}]`)))
	require.NoError(t, backend.Save(ctx, content.KeyCompany, []byte(`{"name":"B2B"}`)))

	res, err := j.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2025-05-17T09:30:00Z", res.Stamp)
	assert.Equal(t, []string{content.KeyProducts, content.KeyMedia}, res.Skipped)
	require.Len(t, res.Objects, 2)
	assert.Equal(t, "backups/2025-05-17T09:30:00Z/nuxt_news_data.json", res.Objects[0].Key)
	assert.Equal(t, "https://cdn.example.com/backups/2025-05-17T09:30:00Z/nuxt_news_data.json", res.Objects[0].URL)

	data, ct, ok := store.Object("backups/2025-05-17T09:30:00Z/company_config.json")
	require.True(t, ok)
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"name":"B2B"}`, string(data))

	for _, obj := range res.Objects {
		assert.Equal(t, storage.ACLPrivate, obj.ACL, obj.Key)
		acl, ok := store.ACL(obj.Key)
		require.True(t, ok)
		assert.Equal(t, storage.ACLPrivate, acl, obj.Key)
	}
}

func TestRunNothingSaved(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory("")
	j, _ := newJob(t, store)

	res, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Objects)
	assert.Len(t, res.Skipped, len(Keys))
	assert.Empty(t, store.Keys())
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		j, _ := newJob(t, nil)
		_, err := j.Run(ctx)
		require.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("upload failure", func(t *testing.T) {
		t.Parallel()
		j, backend := newJob(t, failingStorage{})
		require.NoError(t, backend.Save(ctx, content.KeyMedia, []byte(`[]`)))

		err := j.Handle(ctx)
		require.ErrorIs(t, err, ErrBackup)
		require.ErrorIs(t, err, storage.ErrUploadFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		j, _ := newJob(t, storage.NewMemory(""))
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := j.Run(cctx)
		require.ErrorIs(t, err, ErrBackup)
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.Enabled())
	j := New(Config{Schedule: "@daily"}, snapshot.NewMemory(), nil, nil)
	assert.Equal(t, TaskName, j.Name())
	assert.Equal(t, "@daily", j.Schedule())
}
