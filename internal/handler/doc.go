// Package handler implements the HTTP layer for the Guildmaster API.
//
// Handlers stay thin: decode the request, read the authenticated user ID
// from the context, call one service method, and write the result. All
// game decisions live in the service package.
//
// # Response Format
//
// Successful responses wrap their payload in a data envelope:
//
//	{"data": {...}}
//
// Errors use RFC 9457 Problem Details, produced centrally by
// MapServiceError so every handler reports the same shapes.
package handler
