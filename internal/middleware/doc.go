// Package middleware provides HTTP middleware for the Guildmaster API.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: bearer token validation against the identity provider's keys
//   - RateLimit: token bucket rate limiting per user or IP
//   - Idempotency: replay protection for POST and PATCH requests
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates JWT access tokens and stores the
// authenticated user in the request context:
//
//	mux.Handle("GET /v1/guild", authMiddleware(http.HandlerFunc(guildHandler.Get)))
//
// After authentication, handlers read the user with:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Idempotency
//
// Clients may send an Idempotency-Key header on mutating requests. The
// first request with a given key executes normally and its response is
// cached; retries with the same key, path, and body replay the cached
// response with X-Idempotency-Replayed set.
package middleware
