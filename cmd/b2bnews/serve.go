package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/b2bnews/internal/auth"
	"github.com/dmitrymomot/b2bnews/internal/backup"
	"github.com/dmitrymomot/b2bnews/internal/config"
	"github.com/dmitrymomot/b2bnews/internal/handlers"
	"github.com/dmitrymomot/b2bnews/internal/server"
	"github.com/dmitrymomot/b2bnews/middlewares"
	"github.com/dmitrymomot/b2bnews/pkg/cache"
	"github.com/dmitrymomot/b2bnews/pkg/cookie"
	"github.com/dmitrymomot/b2bnews/pkg/job"
	"github.com/dmitrymomot/b2bnews/pkg/session"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	d, err := newDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	shutdown := []server.Option{
		server.WithShutdownHook(func(ctx context.Context) error {
			d.close(ctx)
			return nil
		}),
	}

	authSvc, err := newAuth(ctx, cfg, d, log)
	if err != nil {
		d.close(ctx)
		return err
	}

	if cfg.Backup.Enabled() && d.storage != nil {
		scheduler, err := job.New(
			job.WithScheduledTask(backup.New(cfg.Backup, d.backend, d.storage, log)),
			job.WithTimeout(cfg.Backup.Timeout),
			job.WithLogger(log),
		)
		if err != nil {
			d.close(ctx)
			return err
		}
		if err := scheduler.Start(); err != nil {
			d.close(ctx)
			return err
		}
		// Hooks run in order: stop the scheduler before closing the backend.
		shutdown = append([]server.Option{server.WithShutdownHook(scheduler.Shutdown())}, shutdown...)
	}

	pages := cache.NewVersioned[[]byte](cache.NewMemory[[]byte](
		cache.WithMaxEntries(cfg.Cache.PageMaxEntries),
		cache.WithDefaultTTL(cfg.Cache.PageTTL),
	))

	opts := append([]server.Option{
		server.WithConfig(cfg.HTTP),
		server.WithLogger(log),
		server.WithErrorMapper(handlers.MapError),
		server.WithHealthChecks(d.checks),
		server.WithHTTPMiddleware(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.API.AllowOrigins...),
			middlewares.WithPaths("/api/"),
		)),
		server.WithMiddleware(middlewares.Timeout(cfg.API.RequestTimeout)),
		server.WithHandlers(
			handlers.NewAuthHandler(authSvc),
			handlers.NewAdminHandler(authSvc, d.news, d.products, d.media, d.company, d.slugs, pages),
			handlers.NewPublicHandler(d.news, d.products, d.company),
			handlers.NewPagesHandler(d.news, d.products, d.company, pages, cfg.Cache.PageTTL),
		),
	}, shutdown...)

	return server.New(opts...).Run(ctx)
}

func newAuth(ctx context.Context, cfg *config.Config, d *deps, log *slog.Logger) (*auth.Service, error) {
	var creds auth.CredentialStore
	if c, err := auth.NewStaticCredentials(cfg.Auth.Username, cfg.Auth.PasswordHash); err != nil {
		log.WarnContext(ctx, "ADMIN_PASSWORD_HASH is not set or invalid, admin login is disabled")
	} else {
		creds = c
	}

	secret := cfg.Auth.CookieSecret
	if secret == "" {
		buf := make([]byte, cookie.MinSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = hex.EncodeToString(buf)
		log.WarnContext(ctx, "COOKIE_SECRET is not set, using a random secret; sessions end on restart")
	}
	cookies, err := cookie.New(secret, cookie.WithSecure(cfg.Auth.SecureCookie))
	if err != nil {
		return nil, err
	}

	var sessions cache.Cache[session.Session]
	if d.redis != nil && cfg.Cache.RedisSessions {
		sessions = cache.NewRedis[session.Session](d.redis, cfg.Cache.SessionPrefix, cache.JSONCodec[session.Session]{})
	} else {
		sessions = cache.NewMemory[session.Session]()
	}

	return auth.NewService(creds, session.NewCacheStore(sessions), cookies, cfg.Auth.SessionTTL, log), nil
}
