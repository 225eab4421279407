package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/b2bnews/internal/config"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, config.BackendFile, cfg.Content.Backend)
	assert.Equal(t, "./data", cfg.Content.SnapshotDir)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PageTTL)
	assert.Equal(t, "backups", cfg.Backup.Prefix)
	assert.False(t, cfg.Backup.Enabled())
	assert.False(t, cfg.UseRedis())
	slugs := slug.New(cfg.Content.SlugOptions()...)
	assert.Equal(t, "caf-restaurant", slugs.Slugify("Café & Restaurant"))
	assert.True(t, strings.HasPrefix(slugs.Slugify("Popular"), "popular-"), "reserved route segment")
	assert.True(t, strings.HasPrefix(slugs.Slugify("categories"), "categories-"), "reserved route segment")
	assert.Equal(t, []string{"*"}, cfg.API.AllowOrigins)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{
		"HTTP_ADDRESS":       ":9000",
		"STORAGE_BACKEND":    "redis",
		"REDIS_URL":          "redis://localhost:6379/0",
		"SLUG_TRANSLITERATE": "true",
		"SLUG_MAX_LENGTH":    "60",
		"SLUG_REPLACE":       "&:and,@:at",
		"SLUG_RESERVED":      "admin",
		"PAGE_CACHE_TTL":     "30s",
		"BACKUP_SCHEDULE":    "0 3 * * *",
		"S3_BUCKET":          "media",
		"S3_ACCESS_KEY":      "key",
		"S3_SECRET_KEY":      "secret",
		"CORS_ALLOW_ORIGINS": "https://a.example,https://b.example",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, config.BackendRedis, cfg.Content.Backend)
	assert.Equal(t, 30*time.Second, cfg.Cache.PageTTL)
	assert.True(t, cfg.Backup.Enabled())
	assert.True(t, cfg.Storage.Enabled())
	assert.True(t, cfg.UseRedis())
	slugs := slug.New(cfg.Content.SlugOptions()...)
	assert.Equal(t, "cafe-and-restaurant", slugs.Slugify("Café & Restaurant"))
	assert.Equal(t, "fish-at-home", slugs.Slugify("Fish @ Home"))
	assert.True(t, strings.HasPrefix(slugs.Slugify("Admin"), "admin-"))
	assert.True(t, strings.HasPrefix(slugs.Slugify("popular"), "popular-"))
	assert.LessOrEqual(t, len(slugs.Slugify(strings.Repeat("word ", 30))), 60)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.AllowOrigins)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{
			name: "unknown backend",
			vars: map[string]string{"STORAGE_BACKEND": "sqlite"},
			want: "STORAGE_BACKEND",
		},
		{
			name: "redis backend without url",
			vars: map[string]string{"STORAGE_BACKEND": "redis"},
			want: "REDIS_URL",
		},
		{
			name: "postgres backend without url",
			vars: map[string]string{"STORAGE_BACKEND": "postgres"},
			want: "DATABASE_URL",
		},
		{
			name: "backup without storage",
			vars: map[string]string{"BACKUP_SCHEDULE": "@daily"},
			want: "BACKUP_SCHEDULE",
		},
		{
			name: "negative slug length",
			vars: map[string]string{"SLUG_MAX_LENGTH": "-1"},
			want: "SLUG_MAX_LENGTH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFrom(tt.vars)
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadParseError(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFrom(map[string]string{"PAGE_CACHE_TTL": "soon"})
	require.ErrorIs(t, err, config.ErrParse)
}
