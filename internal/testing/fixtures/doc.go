// Package fixtures provides test data factories for the Guildmaster API.
//
// The fixtures package contains factory functions for creating test data
// with sensible defaults and optional customization.
//
// # Factory Pattern
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
// Factory methods create domain entities:
//
//	guild := f.CreateGuild(t, "user:alice")        // Default guild
//	char := f.CreateCharacter(t, guild)            // Character in guild
//	battle := f.CreateBattle(t, guild)             // Completed battle
//	territory := f.CreateTerritory(t)              // Unclaimed territory
//
// # Customization
//
// Use option functions for customization:
//
//	rich := f.CreateGuild(t, "user:bob", fixtures.WithBalances(10000, 500))
//	epic := f.CreateCharacter(t, guild, fixtures.WithRarity(model.RarityEpic))
//	lair := f.CreateTerritory(t, fixtures.WithDifficulty(5))
//
// # Cleanup
//
// Test data is cleaned up when the test database is closed.
package fixtures
