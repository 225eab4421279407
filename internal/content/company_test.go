package content_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
)

var defaultCompany = content.CompanyConfig{
	CompanyFullName: "B2B News Station",
	BrandName:       "B2B News Station",
	Email:           "info@aaseo.com",
	PostalCode:      "200070",
}

func TestCompanyService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := newFlakyBackend()
	s := content.NewCompanyService(b)
	require.NoError(t, s.Load(ctx, defaultCompany))
	assert.Equal(t, defaultCompany, s.Get())

	got, err := s.Update(ctx, content.CompanyPatch{Email: ptr("press@example.com"), PostalCode: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "press@example.com", got.Email)
	assert.Empty(t, got.PostalCode)
	assert.Equal(t, "B2B News Station", got.BrandName)

	// A restart sees the saved profile.
	again := content.NewCompanyService(b)
	require.NoError(t, again.Load(ctx, defaultCompany))
	assert.Equal(t, got, again.Get())

	b.broken.Store(true)
	_, err = s.Update(ctx, content.CompanyPatch{BrandName: ptr("lost")})
	require.ErrorIs(t, err, content.ErrFlush)
	assert.Equal(t, got, s.Get())
	b.broken.Store(false)

	reset, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultCompany, reset)
	assert.Equal(t, defaultCompany, s.Get())
}

func TestCompanyLoadKeepsDefaultsForMissingFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := snapshot.NewMemory()
	require.NoError(t, b.Save(ctx, content.KeyCompany, []byte(`{"brandName":"Stored"}`)))

	s := content.NewCompanyService(b)
	require.NoError(t, s.Load(ctx, defaultCompany))
	assert.Equal(t, "Stored", s.Get().BrandName)
	assert.Equal(t, "info@aaseo.com", s.Get().Email)
}
