// Package repository implements data access for guilds, characters,
// battles, and territories on top of the database abstraction.
//
// Repositories translate between SurrealDB query results and domain
// models. They return database sentinel errors (database.ErrNotFound,
// database.ErrConflict, ...) so callers can branch with errors.Is
// without knowing anything about the underlying store.
//
// # Write-Sets
//
// Resolution outcomes that touch more than one record (a battle row plus
// the guild balance plus character experience, a recruit plus the gold
// debit) go through compound methods that submit a single atomic batch.
// A partial outcome is never persisted: either every statement in the
// batch applies or none do.
//
// # Revision Guards
//
// Guild updates carry a WHERE revision = $revision guard and bump the
// revision on success. An update that matches no rows reports
// database.ErrConflict, which the service layer surfaces as a retryable
// conflict.
package repository
