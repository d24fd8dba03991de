// Package middleware provides the HTTP middleware stack for the backend.
//
// The stack, in mounting order:
//   - RequestID: assigns req_* identifiers for cross-boundary correlation
//   - RequestLogger: structured request logging via zap
//   - CORS: cross-origin access for the desktop frontend
//   - RateLimit: per-IP token bucket limiting with idle-client eviction
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.RequestLogger(logger))
//	router.Use(middleware.CORS())
//	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 200}))
package middleware
