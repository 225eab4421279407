// Package middlewares provides cross-cutting HTTP middleware for the site server.
//
//	srv := server.New(
//		server.WithHTTPMiddleware(middlewares.CORS(middlewares.WithAllowOrigins("https://example.com"))),
//		server.WithMiddleware(middlewares.Timeout(10*time.Second)),
//	)
//
// CORS is plain net/http middleware so that preflight requests are answered even
// though no OPTIONS routes are registered.
package middlewares
