// Package logger builds the service's *slog.Logger.
//
// Records go to stdout as JSON (or text for local development). Context extractors add
// request-scoped attributes such as the request id to every record logged with a
// context, and warnings and errors are mirrored to Sentry when a DSN is configured:
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"}, logger.RequestIDExtractor)
//	ctx := logger.WithRequestID(ctx, "abc-123")
//	log.InfoContext(ctx, "article created", slog.String("slug", "global-tech-summit-2024"))
//
// Use NewNope in tests.
package logger
