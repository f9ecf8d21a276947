// Package model defines domain entities and data structures for Guildmaster.
//
// The model package contains all struct definitions for domain objects, request
// types, and error definitions. Models are used across all layers of the
// application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Guild: The player's progression container (currency, level, territory count)
//   - Character: A recruitable combat unit owned by a guild
//   - Battle: The immutable record of one resolved battle
//   - Territory: A global conquerable region with fixed rewards
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Guild struct {
//	    ID   string `json:"id"`
//	    Name string `json:"name"`
//	    Gold int    `json:"gold"`
//	}
//
// # Validation Constants
//
// The package defines the canonical balance constants the resolvers compute
// with (starting balances, base stats, rarity multipliers, roster limits).
// Requests are validated at the engine boundary, not left to callers.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
