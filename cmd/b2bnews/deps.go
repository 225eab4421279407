package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/b2bnews/internal/config"
	"github.com/dmitrymomot/b2bnews/internal/content"
	"github.com/dmitrymomot/b2bnews/internal/content/seed"
	"github.com/dmitrymomot/b2bnews/pkg/db"
	"github.com/dmitrymomot/b2bnews/pkg/health"
	"github.com/dmitrymomot/b2bnews/pkg/redis"
	"github.com/dmitrymomot/b2bnews/pkg/slug"
	"github.com/dmitrymomot/b2bnews/pkg/snapshot"
	"github.com/dmitrymomot/b2bnews/pkg/storage"
)

// deps holds everything built from configuration.
type deps struct {
	log     *slog.Logger
	backend snapshot.Backend
	redis   goredis.UniversalClient
	storage storage.Storage
	slugs   *slug.Manager
	checks  health.Checks

	news     *content.NewsService
	products *content.ProductService
	media    *content.MediaService
	company  *content.CompanyService

	closers []func() error
}

func newDeps(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *deps, err error) {
	d := &deps{log: log, checks: health.Checks{}}
	defer func() {
		if err != nil {
			d.close(ctx)
		}
	}()

	if cfg.UseRedis() {
		d.redis, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		d.checks["redis"] = redis.Healthcheck(d.redis)
		if cfg.Content.Backend != config.BackendRedis {
			d.closers = append(d.closers, d.redis.Close)
		}
	}

	if d.backend, err = newBackend(ctx, cfg, d, log); err != nil {
		return nil, err
	}
	d.closers = append(d.closers, d.backend.Close)
	d.checks["snapshots"] = snapshotCheck(d.backend)

	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3(cfg.Storage)
		if err != nil {
			return nil, err
		}
		d.storage = s3
	} else {
		log.InfoContext(ctx, "object storage not configured, media uploads and backups are disabled")
	}

	d.slugs = slug.New(cfg.Content.SlugOptions()...)
	opts := []content.Option{
		content.WithLogger(log),
		content.WithSlugManager(d.slugs),
	}
	if d.storage != nil {
		opts = append(opts, content.WithStorage(d.storage))
	}
	d.news = content.NewNewsService(d.backend, opts...)
	d.products = content.NewProductService(d.backend, opts...)
	d.media = content.NewMediaService(d.backend, opts...)
	d.company = content.NewCompanyService(d.backend, opts...)

	ds, err := seed.Default()
	if err != nil {
		return nil, err
	}
	if cfg.Content.NoSeed {
		ds = seed.Dataset{
			News:     []content.NewsArticle{},
			Products: []content.Product{},
			Media:    []content.MediaItem{},
			Company:  ds.Company,
		}
	}

	if err := d.news.Load(ctx, ds.News); err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if err := d.products.Load(ctx, ds.Products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if err := d.media.Load(ctx, ds.Media); err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	if err := d.company.Load(ctx, ds.Company); err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	return d, nil
}

func newBackend(ctx context.Context, cfg *config.Config, d *deps, log *slog.Logger) (snapshot.Backend, error) {
	switch cfg.Content.Backend {
	case config.BackendMemory:
		log.WarnContext(ctx, "using in-memory snapshots, content is lost on restart")
		return snapshot.NewMemory(), nil
	case config.BackendRedis:
		return snapshot.NewRedis(d.redis, cfg.Content.RedisPrefix), nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		d.checks["postgres"] = db.Healthcheck(pool)
		backend, err := snapshot.NewPostgres(ctx, pool, cfg.DB.MigrationsTable, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return backend, nil
	default:
		return snapshot.NewFile(cfg.Content.SnapshotDir)
	}
}

// snapshotCheck reads the company document; a missing key still means the
// backend answered.
func snapshotCheck(b snapshot.Backend) health.CheckFunc {
	return func(ctx context.Context) error {
		if _, err := b.Load(ctx, content.KeyCompany); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
			return err
		}
		return nil
	}
}

// close releases resources in reverse order of creation.
func (d *deps) close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.ErrorContext(ctx, "failed to close resource", slog.String("error", err.Error()))
		}
	}
	d.closers = nil
}
