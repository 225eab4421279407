// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/b2bnews/internal/auth"
	"github.com/dmitrymomot/b2bnews/internal/backup"
	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/pkg/db"
	"github.com/dmitrymomot/b2bnews/pkg/logger"
	"github.com/dmitrymomot/b2bnews/pkg/redis"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

// Snapshot backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var (
	ErrParse   = errors.New("config: failed to parse environment")
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the full application configuration.
type Config struct {
	HTTP    server.Config
	Log     logger.Config
	Auth    auth.Config
	Storage storage.Config
	DB      db.Config
	Redis   redis.Config
	Backup  backup.Config
	Content Content
	Cache   Cache
	API     API
}

// API configures cross-origin access and request deadlines.
type API struct {
	AllowOrigins   []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Content selects where snapshots live and how slugs are generated.
type Content struct {
	Backend     string `env:"STORAGE_BACKEND" envDefault:"file"` // file | memory | redis | postgres
	SnapshotDir string `env:"SNAPSHOT_DIR" envDefault:"./data"`
	RedisPrefix string `env:"SNAPSHOT_REDIS_PREFIX" envDefault:"b2bnews:snapshot:"`
	// Skip seed data on empty stores.
	NoSeed bool `env:"CONTENT_NO_SEED" envDefault:"false"`

	SlugTransliterate bool              `env:"SLUG_TRANSLITERATE" envDefault:"false"`
	SlugMaxLength     int               `env:"SLUG_MAX_LENGTH" envDefault:"0"`
	SlugMinLength     int               `env:"SLUG_MIN_LENGTH" envDefault:"0"`
	SlugStripChars    string            `env:"SLUG_STRIP_CHARS"`
	SlugReplace       map[string]string `env:"SLUG_REPLACE" envSeparator:","` // e.g. "&:and,@:at"
	// Added to content.ReservedSlugs.
	SlugReserved []string `env:"SLUG_RESERVED" envSeparator:","`
}

// SlugOptions returns slug manager options for the configured rules.
// Slugs matching content.ReservedSlugs are always avoided.
func (c Content) SlugOptions() []slug.Option {
	opts := []slug.Option{
		slug.ReservedSlugs(content.ReservedSlugs...),
		slug.ReservedSlugs(c.SlugReserved...),
	}
	if c.SlugTransliterate {
		opts = append(opts, slug.WithTransliteration())
	}
	if c.SlugMaxLength > 0 {
		opts = append(opts, slug.MaxLength(c.SlugMaxLength))
	}
	if c.SlugMinLength > 0 {
		opts = append(opts, slug.MinLength(c.SlugMinLength))
	}
	if c.SlugStripChars != "" {
		opts = append(opts, slug.StripChars(c.SlugStripChars))
	}
	if len(c.SlugReplace) > 0 {
		opts = append(opts, slug.CustomReplace(c.SlugReplace))
	}
	return opts
}

// Cache configures the rendered page cache and the session cache.
type Cache struct {
	PageTTL        time.Duration `env:"PAGE_CACHE_TTL" envDefault:"5m"`
	PageMaxEntries int           `env:"PAGE_CACHE_MAX_ENTRIES" envDefault:"512"`
	// Keep sessions in redis when REDIS_URL is set.
	RedisSessions bool   `env:"SESSION_REDIS" envDefault:"true"`
	SessionPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"b2bnews:session:"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	var errs []error

	backends := []string{BackendFile, BackendMemory, BackendRedis, BackendPostgres}
	if !slices.Contains(backends, c.Content.Backend) {
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be one of %v, got %q", backends, c.Content.Backend))
	}
	switch c.Content.Backend {
	case BackendFile:
		if c.Content.SnapshotDir == "" {
			errs = append(errs, errors.New("SNAPSHOT_DIR is required for the file backend"))
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	case BackendPostgres:
		if c.DB.ConnectionString == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	}

	if c.Content.SlugMaxLength < 0 {
		errs = append(errs, errors.New("SLUG_MAX_LENGTH must not be negative"))
	}
	if c.Content.SlugMinLength < 0 {
		errs = append(errs, errors.New("SLUG_MIN_LENGTH must not be negative"))
	}
	if c.Backup.Enabled() && !c.Storage.Enabled() {
		errs = append(errs, errors.New("BACKUP_SCHEDULE requires S3 storage"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalid}, errs...)...)
	}
	return nil
}

// UseRedis reports whether a redis client is needed.
func (c Config) UseRedis() bool {
	return c.Content.Backend == BackendRedis || (c.Cache.RedisSessions && c.Redis.URL != "")
}
