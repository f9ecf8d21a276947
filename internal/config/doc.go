// Package config manages application configuration for Guildmaster.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single source
// of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: token verification settings for the identity provider boundary
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT       - HTTP server port (default: 8080)
//	SERVER_ENV        - development, production, or test
//	DB_HOST / DB_PORT - SurrealDB endpoint
//	DB_NAMESPACE      - Database namespace (default: guildmaster)
//	DB_DATABASE       - Database name (default: main)
//	JWT_PUBLIC_KEY_PATH - RSA public key used to verify access tokens
//
// # Default Values
//
// Sensible defaults are provided for development:
//
//	func getEnv(key, defaultValue string) string {
//	    if value := os.Getenv(key); value != "" {
//	        return value
//	    }
//	    return defaultValue
//	}
package config
