package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/content/seed"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	ds, err := seed.Default()
	require.NoError(t, err)

	require.Len(t, ds.News, 3)
	require.Len(t, ds.Products, 5)
	require.Len(t, ds.Media, 2)
	assert.Equal(t, "B2B News Station", ds.Company.BrandName)
	assert.Equal(t, "200070", ds.Company.PostalCode)

	assert.Equal(t, "global-tech-summit-2024-future-ai-manufacturing", ds.News[0].Slug)
	assert.Equal(t, []string{"AI", "Manufacturing", "Technology"}, ds.News[0].Tags)

	assert.Equal(t, "aether-cloud-engine-x1", ds.Products[0].Slug)
	assert.Equal(t, "titanium-storage-array-10pb", ds.Products[3].Slug)
	assert.Equal(t, "< 0.5ms", ds.Products[0].Specifications["Latency"])
	for _, p := range ds.Products {
		assert.True(t, slug.IsValid(p.Slug), p.Slug)
	}

	assert.Equal(t, int64(204800), ds.Media[1].Size)
	assert.Empty(t, ds.Media[0].UpdatedAt)
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a, err := seed.Default()
	require.NoError(t, err)
	a.News[0].Tags[0] = "changed"
	a.Products[0].Specifications["Latency"] = "changed"

	b, err := seed.Default()
	require.NoError(t, err)
	assert.Equal(t, "AI", b.News[0].Tags[0])
	assert.Equal(t, "< 0.5ms", b.Products[0].Specifications["Latency"])
}

func TestParse(t *testing.T) {
	t.Parallel()

	ds, err := seed.Parse([]byte("news:\n  - id: x\n    title: \"  Hello,   World!  \"\n    slug: \"   \"\n"))
	require.NoError(t, err)
	require.Len(t, ds.News, 1)
	assert.Equal(t, "hello-world", ds.News[0].Slug)

	_, err = seed.Parse([]byte("news: [unclosed"))
	require.ErrorIs(t, err, seed.ErrDecode)
}
