package content_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func stored(t *testing.T, b snapshot.Backend, key string) []row {
	t.Helper()
	data, err := b.Load(context.Background(), key)
	require.NoError(t, err)
	var out []row
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestCollectionLoad(t *testing.T) {
	t.Parallel()

	t.Run("seeds and saves when nothing is stored", func(t *testing.T) {
		t.Parallel()
		b := snapshot.NewMemory()
		c := content.NewCollection[row](b, "rows", nil)

		err := c.Load(context.Background(), nil, func() []row { return []row{{ID: "1", Name: "a"}} })
		require.NoError(t, err)
		assert.Equal(t, []row{{ID: "1", Name: "a"}}, c.All())
		assert.Equal(t, []row{{ID: "1", Name: "a"}}, stored(t, b, "rows"))
	})

	t.Run("applies fix to stored data without saving", func(t *testing.T) {
		t.Parallel()
		b := newFlakyBackend()
		require.NoError(t, b.Memory.Save(context.Background(), "rows", []byte(`[{"id":"1","name":"a"}]`)))
		c := content.NewCollection[row](b, "rows", nil)

		err := c.Load(context.Background(), func(items []row) []row {
			items[0].Name = "fixed"
			return items
		}, func() []row { t.Fatal("defaults must not be used"); return nil })
		require.NoError(t, err)
		assert.Equal(t, "fixed", c.All()[0].Name)
		assert.Zero(t, b.saves.Load())
	})

	t.Run("rejects corrupt snapshot", func(t *testing.T) {
		t.Parallel()
		b := snapshot.NewMemory()
		require.NoError(t, b.Save(context.Background(), "rows", []byte(`{not json`)))
		c := content.NewCollection[row](b, "rows", nil)

		err := c.Load(context.Background(), nil, nil)
		require.ErrorIs(t, err, content.ErrCorruptSnapshot)
	})

	t.Run("seed failure leaves collection empty", func(t *testing.T) {
		t.Parallel()
		b := newFlakyBackend()
		b.broken.Store(true)
		c := content.NewCollection[row](b, "rows", nil)

		err := c.Load(context.Background(), nil, func() []row { return []row{{ID: "1"}} })
		require.ErrorIs(t, err, content.ErrFlush)
		assert.Zero(t, c.Len())
	})
}

func TestCollectionMutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := snapshot.NewMemory()
	c := content.NewCollection[row](b, "rows", nil)
	require.NoError(t, c.Load(ctx, nil, nil))
	assert.Empty(t, stored(t, b, "rows"))

	require.NoError(t, c.Append(ctx, row{ID: "1", Name: "a"}))
	require.NoError(t, c.Append(ctx, row{ID: "2", Name: "b"}))
	require.NoError(t, c.Prepend(ctx, row{ID: "0", Name: "z"}))
	assert.Equal(t, []row{{"0", "z"}, {"1", "a"}, {"2", "b"}}, c.All())

	got, err := c.Update(ctx, func(r row) bool { return r.ID == "1" }, func(r row) (row, error) {
		r.Name = "A"
		return r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, row{"1", "A"}, got)

	found, ok := c.Find(func(r row) bool { return r.Name == "A" })
	assert.True(t, ok)
	assert.Equal(t, "1", found.ID)

	_, err = c.Update(ctx, func(r row) bool { return r.ID == "missing" }, func(r row) (row, error) { return r, nil })
	require.ErrorIs(t, err, content.ErrNotFound)

	require.NoError(t, c.Delete(ctx, func(r row) bool { return r.ID == "0" }))
	require.ErrorIs(t, c.Delete(ctx, func(r row) bool { return r.ID == "0" }), content.ErrNotFound)

	assert.Equal(t, []row{{"1", "A"}, {"2", "b"}}, stored(t, b, "rows"))

	require.NoError(t, c.Replace(ctx, []row{{"9", "n"}}))
	assert.Equal(t, []row{{"9", "n"}}, stored(t, b, "rows"))
}

func TestCollectionRollsBackOnFailedSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := newFlakyBackend()
	c := content.NewCollection[row](b, "rows", nil)
	require.NoError(t, c.Load(ctx, nil, func() []row { return []row{{"1", "a"}} }))

	b.broken.Store(true)
	require.ErrorIs(t, c.Append(ctx, row{"2", "b"}), content.ErrFlush)
	_, err := c.Update(ctx, func(r row) bool { return r.ID == "1" }, func(r row) (row, error) {
		r.Name = "changed"
		return r, nil
	})
	require.ErrorIs(t, err, content.ErrFlush)
	require.ErrorIs(t, c.Delete(ctx, func(r row) bool { return true }), content.ErrFlush)

	assert.Equal(t, []row{{"1", "a"}}, c.All())
	assert.Equal(t, []row{{"1", "a"}}, stored(t, b, "rows"))
}

func TestCollectionAllReturnsCopy(t *testing.T) {
	t.Parallel()
	c := content.NewCollection[row](snapshot.NewMemory(), "rows", nil)
	require.NoError(t, c.Load(context.Background(), nil, func() []row { return []row{{"1", "a"}} }))

	items := c.All()
	items[0].Name = "changed"
	assert.Equal(t, "a", c.All()[0].Name)
}
