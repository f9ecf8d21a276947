// Package service implements the resolution engine for Guildmaster.
//
// Every gameplay outcome is decided here: battles, recruitment draws,
// character and guild upgrades, territory conquest, and shop purchases.
// Services validate the request against current guild state, roll any
// randomness through an injected source, and hand the finished outcome to
// a repository as a single write-set.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Concurrency
//
// Mutating operations serialize per guild through a shared GuildLocks
// instance. Reads of guild state, the decision logic, and the final
// write-set all happen under the guild's lock, so two concurrent requests
// can never both spend the same gold. Repository writes additionally carry
// a revision guard as a cross-process backstop.
//
// # Currency
//
// All gold and gem movement goes through ApplyDelta. No service mutates a
// balance directly, which keeps the non-negative invariant in one place.
package service
