package content

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/b2bnews/pkg/logger"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

// ReservedSlugs are path segments of fixed public routes (/api/news/popular,
// /api/news/categories, /api/products/categories). Derived slugs never equal them.
var ReservedSlugs = []string{"popular", "categories"}

// Option configures a content service.
type Option func(*options)

type options struct {
	log     *slog.Logger
	slugs   *slug.Manager
	storage storage.Storage
	now     func() time.Time
	newID   func() string
}

func defaultOptions() *options {
	return &options{
		log:   logger.NewNope(),
		slugs: slug.New(slug.ReservedSlugs(ReservedSlugs...)),
		now:   time.Now,
		newID: newID,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used by the service.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSlugManager sets the slug manager used to create, update and repair slugs.
func WithSlugManager(m *slug.Manager) Option {
	return func(o *options) {
		if m != nil {
			o.slugs = m
		}
	}
}

// WithStorage enables media uploads through s.
func WithStorage(s storage.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how new item ids are produced.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
